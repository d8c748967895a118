package reconcile

import (
	"context"
	"strconv"
	"strings"
)

// 属性键与上游采集字段保持一致，diff 只携带发生变化的键。
const (
	attrClusterType   = "cluster_type"
	attrGroup         = "group"
	attrStatus        = "status"
	attrVCPUs         = "vcpus"
	attrMemory        = "memory"
	attrDisk          = "disk"
	attrCluster       = "cluster"
	attrPrimaryIP4    = "primary_ip4"
	attrPrimaryIP6    = "primary_ip6"
	attrDeviceRole    = "device_role"
	attrDeviceType    = "device_type"
	attrSite          = "site"
	attrEnabled       = "enabled"
	attrMACAddress    = "mac_address"
	attrState         = "state"
	attrInterfaceName = "vm_interface_name"
	attrVMName        = "vm_name"
)

// Node 是六类实体的统一能力集，引擎只通过该接口分派，不对具体类型做特判。
type Node interface {
	Kind() Kind
	// Key 返回标识元组的规范化形式，在同类实体内唯一。
	Key() string
	// Attributes 返回参与变更检测的属性；集合内容可能随部署配置变化。
	Attributes(s Settings) map[string]any
	Children() []Node

	Create(ctx context.Context, rt *Runtime) error
	Update(ctx context.Context, rt *Runtime, diff map[string]any) error
	// Delete 只登记有序删除，不直接落库。
	Delete(ctx context.Context, rt *Runtime) error
}

// Tree 持有一个批次的实体森林，批次结束即丢弃。
type Tree struct {
	Roots []Node
}

func joinKey(parts ...string) string {
	return strings.Join(parts, "|")
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
