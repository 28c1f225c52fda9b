// Package kube fetches the cluster snapshots behind each dashboard view.
package kube

import "time"

// AllNamespaces selects every namespace in list calls.
const AllNamespaces = ""

// OverviewSnapshot summarizes the cluster for the Overview tab.
type OverviewSnapshot struct {
	Nodes      int
	ReadyNodes int

	Pods        int
	RunningPods int
	PendingPods int
	FailedPods  int

	Deployments      int
	ReadyDeployments int

	Namespaces int
}

// NodeRow is one row of the Nodes tab.
type NodeRow struct {
	Name      string
	Status    string
	Roles     string
	Version   string
	CreatedAt time.Time
}

// WorkloadRow is one row of the Workloads tab. A workload is a
// deployment, daemon set, or stateful set.
type WorkloadRow struct {
	Namespace string
	Name      string
	Kind      string
	Ready     string
	CreatedAt time.Time
}

// PodRow is one row of the Pods tab.
type PodRow struct {
	Namespace string
	Name      string
	Phase     string
	Ready     string
	Restarts  int
	Node      string
	CreatedAt time.Time
}

// SecretRow is one row of the Secrets tab. Only metadata is listed;
// secret values never leave the data layer unredacted.
type SecretRow struct {
	Namespace string
	Name      string
	Type      string
	Keys      int
	CreatedAt time.Time
}
