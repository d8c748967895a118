package reconcile

// Kind 枚举六类受管实体，删除顺序等逻辑按枚举分派，不使用类型名字符串。
type Kind int

const (
	KindClusterGroup Kind = iota
	KindCluster
	KindHost
	KindVirtualMachine
	KindVMInterface
	KindIPAddress
)

func (k Kind) String() string {
	switch k {
	case KindClusterGroup:
		return "cluster_group"
	case KindCluster:
		return "cluster"
	case KindHost:
		return "host"
	case KindVirtualMachine:
		return "virtual_machine"
	case KindVMInterface:
		return "vm_interface"
	case KindIPAddress:
		return "ip_address"
	default:
		return "unknown"
	}
}

// deleteOrder 从依赖最深的实体开始刷删除桶，避免触发目标库的外键约束。
// 先删 Cluster 再删其下虚拟机会直接违反约束，顺序不可调整。
var deleteOrder = [...]Kind{
	KindIPAddress,
	KindVMInterface,
	KindVirtualMachine,
	KindHost,
	KindCluster,
	KindClusterGroup,
}
