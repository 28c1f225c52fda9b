package kube

import (
	"context"
	"fmt"

	"k8s.io/apimachinery/pkg/api/meta"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/runtime"
	"sigs.k8s.io/yaml"
)

// redacted replaces secret values in YAML output.
const redacted = "**REDACTED**"

// ResourceYAML renders one resource as YAML for the describe overlay.
// Managed fields are dropped; secret data values are redacted.
func (c *Client) ResourceYAML(ctx context.Context, kind, namespace, name string) (string, error) {
	var (
		obj runtime.Object
		err error
	)
	switch kind {
	case "Node":
		obj, err = c.cs.CoreV1().Nodes().Get(ctx, name, metav1.GetOptions{})
	case "Pod":
		obj, err = c.cs.CoreV1().Pods(namespace).Get(ctx, name, metav1.GetOptions{})
	case "Secret":
		secret, gerr := c.cs.CoreV1().Secrets(namespace).Get(ctx, name, metav1.GetOptions{})
		if gerr == nil {
			for key := range secret.Data {
				secret.Data[key] = []byte(redacted)
			}
			secret.StringData = nil
		}
		obj, err = secret, gerr
	case "Deployment":
		obj, err = c.cs.AppsV1().Deployments(namespace).Get(ctx, name, metav1.GetOptions{})
	case "DaemonSet":
		obj, err = c.cs.AppsV1().DaemonSets(namespace).Get(ctx, name, metav1.GetOptions{})
	case "StatefulSet":
		obj, err = c.cs.AppsV1().StatefulSets(namespace).Get(ctx, name, metav1.GetOptions{})
	default:
		return "", fmt.Errorf("unsupported kind %q", kind)
	}
	if err != nil {
		return "", fmt.Errorf("get %s %s/%s: %w", kind, namespace, name, err)
	}

	if accessor, aerr := meta.Accessor(obj); aerr == nil {
		accessor.SetManagedFields(nil)
	}

	out, err := yaml.Marshal(obj)
	if err != nil {
		return "", fmt.Errorf("marshal %s %s/%s: %w", kind, namespace, name, err)
	}
	return string(out), nil
}
