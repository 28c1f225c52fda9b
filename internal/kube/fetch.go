package kube

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"
	appsv1 "k8s.io/api/apps/v1"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
)

const rolePrefix = "node-role.kubernetes.io/"

// Overview aggregates cluster-wide counts. The list calls fan out
// concurrently; the first failure cancels the rest.
func (c *Client) Overview(ctx context.Context, namespace string) (OverviewSnapshot, error) {
	var (
		nodes       *corev1.NodeList
		pods        *corev1.PodList
		deployments *appsv1.DeploymentList
		namespaces  *corev1.NamespaceList
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		nodes, err = c.cs.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		pods, err = c.cs.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		deployments, err = c.cs.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		namespaces, err = c.cs.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
		return err
	})
	if err := g.Wait(); err != nil {
		return OverviewSnapshot{}, fmt.Errorf("fetch overview: %w", err)
	}

	snapshot := OverviewSnapshot{
		Nodes:       len(nodes.Items),
		Pods:        len(pods.Items),
		Deployments: len(deployments.Items),
		Namespaces:  len(namespaces.Items),
	}
	for i := range nodes.Items {
		if nodeReady(&nodes.Items[i]) {
			snapshot.ReadyNodes++
		}
	}
	for i := range pods.Items {
		switch pods.Items[i].Status.Phase {
		case corev1.PodRunning:
			snapshot.RunningPods++
		case corev1.PodPending:
			snapshot.PendingPods++
		case corev1.PodFailed:
			snapshot.FailedPods++
		}
	}
	for i := range deployments.Items {
		d := &deployments.Items[i]
		if d.Status.ReadyReplicas == replicasWanted(d.Spec.Replicas) {
			snapshot.ReadyDeployments++
		}
	}
	return snapshot, nil
}

// Nodes lists cluster nodes.
func (c *Client) Nodes(ctx context.Context) ([]NodeRow, error) {
	list, err := c.cs.CoreV1().Nodes().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch nodes: %w", err)
	}
	rows := make([]NodeRow, 0, len(list.Items))
	for i := range list.Items {
		node := &list.Items[i]
		status := "NotReady"
		if nodeReady(node) {
			status = "Ready"
		}
		rows = append(rows, NodeRow{
			Name:      node.Name,
			Status:    status,
			Roles:     nodeRoles(node.Labels),
			Version:   node.Status.NodeInfo.KubeletVersion,
			CreatedAt: node.CreationTimestamp.Time,
		})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows, nil
}

// Workloads lists deployments, daemon sets, and stateful sets in one
// merged table, sorted by namespace then name.
func (c *Client) Workloads(ctx context.Context, namespace string) ([]WorkloadRow, error) {
	var (
		deployments  *appsv1.DeploymentList
		daemonSets   *appsv1.DaemonSetList
		statefulSets *appsv1.StatefulSetList
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		deployments, err = c.cs.AppsV1().Deployments(namespace).List(ctx, metav1.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		daemonSets, err = c.cs.AppsV1().DaemonSets(namespace).List(ctx, metav1.ListOptions{})
		return err
	})
	g.Go(func() (err error) {
		statefulSets, err = c.cs.AppsV1().StatefulSets(namespace).List(ctx, metav1.ListOptions{})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetch workloads: %w", err)
	}

	rows := make([]WorkloadRow, 0, len(deployments.Items)+len(daemonSets.Items)+len(statefulSets.Items))
	for i := range deployments.Items {
		d := &deployments.Items[i]
		rows = append(rows, WorkloadRow{
			Namespace: d.Namespace,
			Name:      d.Name,
			Kind:      "Deployment",
			Ready:     fmt.Sprintf("%d/%d", d.Status.ReadyReplicas, replicasWanted(d.Spec.Replicas)),
			CreatedAt: d.CreationTimestamp.Time,
		})
	}
	for i := range daemonSets.Items {
		ds := &daemonSets.Items[i]
		rows = append(rows, WorkloadRow{
			Namespace: ds.Namespace,
			Name:      ds.Name,
			Kind:      "DaemonSet",
			Ready:     fmt.Sprintf("%d/%d", ds.Status.NumberReady, ds.Status.DesiredNumberScheduled),
			CreatedAt: ds.CreationTimestamp.Time,
		})
	}
	for i := range statefulSets.Items {
		ss := &statefulSets.Items[i]
		rows = append(rows, WorkloadRow{
			Namespace: ss.Namespace,
			Name:      ss.Name,
			Kind:      "StatefulSet",
			Ready:     fmt.Sprintf("%d/%d", ss.Status.ReadyReplicas, replicasWanted(ss.Spec.Replicas)),
			CreatedAt: ss.CreationTimestamp.Time,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Namespace != rows[j].Namespace {
			return rows[i].Namespace < rows[j].Namespace
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

// Pods lists pods in the namespace.
func (c *Client) Pods(ctx context.Context, namespace string) ([]PodRow, error) {
	list, err := c.cs.CoreV1().Pods(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch pods: %w", err)
	}
	rows := make([]PodRow, 0, len(list.Items))
	for i := range list.Items {
		pod := &list.Items[i]
		ready, restarts := podContainers(pod)
		rows = append(rows, PodRow{
			Namespace: pod.Namespace,
			Name:      pod.Name,
			Phase:     podPhase(pod),
			Ready:     ready,
			Restarts:  restarts,
			Node:      pod.Spec.NodeName,
			CreatedAt: pod.CreationTimestamp.Time,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Namespace != rows[j].Namespace {
			return rows[i].Namespace < rows[j].Namespace
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

// Secrets lists secret metadata in the namespace. Values are not read.
func (c *Client) Secrets(ctx context.Context, namespace string) ([]SecretRow, error) {
	list, err := c.cs.CoreV1().Secrets(namespace).List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch secrets: %w", err)
	}
	rows := make([]SecretRow, 0, len(list.Items))
	for i := range list.Items {
		secret := &list.Items[i]
		rows = append(rows, SecretRow{
			Namespace: secret.Namespace,
			Name:      secret.Name,
			Type:      string(secret.Type),
			Keys:      len(secret.Data),
			CreatedAt: secret.CreationTimestamp.Time,
		})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].Namespace != rows[j].Namespace {
			return rows[i].Namespace < rows[j].Namespace
		}
		return rows[i].Name < rows[j].Name
	})
	return rows, nil
}

// Namespaces lists namespace names, sorted.
func (c *Client) Namespaces(ctx context.Context) ([]string, error) {
	list, err := c.cs.CoreV1().Namespaces().List(ctx, metav1.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("fetch namespaces: %w", err)
	}
	names := make([]string, 0, len(list.Items))
	for i := range list.Items {
		names = append(names, list.Items[i].Name)
	}
	sort.Strings(names)
	return names, nil
}

func nodeReady(node *corev1.Node) bool {
	for _, cond := range node.Status.Conditions {
		if cond.Type == corev1.NodeReady {
			return cond.Status == corev1.ConditionTrue
		}
	}
	return false
}

func nodeRoles(labels map[string]string) string {
	var roles []string
	for label := range labels {
		if role := strings.TrimPrefix(label, rolePrefix); role != label && role != "" {
			roles = append(roles, role)
		}
	}
	if len(roles) == 0 {
		return "<none>"
	}
	sort.Strings(roles)
	return strings.Join(roles, ",")
}

func podPhase(pod *corev1.Pod) string {
	if pod.DeletionTimestamp != nil {
		return "Terminating"
	}
	return string(pod.Status.Phase)
}

func podContainers(pod *corev1.Pod) (ready string, restarts int) {
	readyCount := 0
	for _, cs := range pod.Status.ContainerStatuses {
		if cs.Ready {
			readyCount++
		}
		restarts += int(cs.RestartCount)
	}
	return fmt.Sprintf("%d/%d", readyCount, len(pod.Spec.Containers)), restarts
}

func replicasWanted(spec *int32) int32 {
	if spec == nil {
		return 1
	}
	return *spec
}
