package source

import (
	"net/netip"
	"strings"

	"vsync/internal/reconcile"
	"vsync/pkg/classify"
)

// hostDeviceRole 宿主机统一落在该角色下，角色记录由迁移预置。
const hostDeviceRole = "Hypervisor Host"

// 电源态到状态名的映射，未知电源态按关机处理。
var vmStatusByPower = map[string]string{
	"POWERED_ON":  "Active",
	"POWERED_OFF": "Offline",
	"SUSPENDED":   "Suspended",
}

var ipStatusByState = map[string]string{
	"PREFERRED": "Active",
	"UNKNOWN":   "Reserved",
}

// Builder 把库存快照翻译成协调引擎的来源树。
// 树的形状随 Settings 变化：是否带集群层、数据中心是否作为顶层集群组。
type Builder struct {
	settings reconcile.Settings
}

func NewBuilder(settings reconcile.Settings) *Builder {
	return &Builder{settings: settings}
}

func (b *Builder) Build(snap *Snapshot) *reconcile.Tree {
	tree := &reconcile.Tree{}
	for _, dc := range snap.Datacenters {
		var group *reconcile.ClusterGroup
		if b.settings.UseClusters && b.settings.EnforceClusterGroupTopLevel {
			group = &reconcile.ClusterGroup{Name: dc.Name}
			tree.Roots = append(tree.Roots, group)
		}
		for _, c := range dc.Clusters {
			b.buildCluster(tree, group, dc.Name, c)
		}
	}
	return tree
}

func (b *Builder) buildCluster(tree *reconcile.Tree, group *reconcile.ClusterGroup, dcName string, c Cluster) {
	clusterName := c.Name
	if !b.settings.UseClusters {
		clusterName = b.settings.DefaultClusterName
	}

	vms := make([]*reconcile.VirtualMachine, 0, len(c.VirtualMachines))
	for _, vm := range c.VirtualMachines {
		vms = append(vms, b.buildVM(clusterName, vm))
	}
	hosts := make([]*reconcile.Host, 0, len(c.Hosts))
	for _, h := range c.Hosts {
		hosts = append(hosts, b.buildHost(clusterName, h))
	}

	if !b.settings.UseClusters {
		// 无集群模式不建集群节点，虚机与宿主机直接进根。
		for _, vm := range vms {
			tree.Roots = append(tree.Roots, vm)
		}
		for _, h := range hosts {
			tree.Roots = append(tree.Roots, h)
		}
		return
	}

	node := &reconcile.Cluster{
		Name:            c.Name,
		ClusterType:     b.settings.VsphereType,
		Group:           dcName,
		VirtualMachines: vms,
		Hosts:           hosts,
	}
	if group != nil {
		group.Clusters = append(group.Clusters, node)
		return
	}
	tree.Roots = append(tree.Roots, node)
}

func (b *Builder) buildHost(clusterName string, h Host) *reconcile.Host {
	return &reconcile.Host{
		Name:       h.Name,
		DeviceRole: hostDeviceRole,
		DeviceType: h.Model,
		Site:       classify.ParseNameForSite(h.Name),
		Cluster:    clusterName,
	}
}

func (b *Builder) buildVM(clusterName string, vm VirtualMachine) *reconcile.VirtualMachine {
	status, ok := vmStatusByPower[strings.ToUpper(vm.PowerState)]
	if !ok {
		status = "Offline"
	}
	node := &reconcile.VirtualMachine{
		Name:    vm.Name,
		Status:  status,
		VCPUs:   vm.VCPUs,
		Memory:  vm.MemoryMB,
		Disk:    vm.DiskGB,
		Cluster: clusterName,
	}

	var lowest4, lowest6 netip.Addr
	for _, iface := range vm.Interfaces {
		mac := strings.ToLower(iface.MACAddress)
		inode := &reconcile.VMInterface{
			Name:           iface.Name,
			VirtualMachine: vm.Name,
			Enabled:        iface.Connected,
			MACAddress:     mac,
		}
		for _, ip := range iface.IPAddresses {
			addr, err := netip.ParseAddr(ip.Address)
			if err != nil {
				continue
			}
			state, ok := ipStatusByState[strings.ToUpper(ip.State)]
			if !ok {
				state = "Active"
			}
			inode.IPAddresses = append(inode.IPAddresses, &reconcile.IPAddress{
				Host:          addr.String(),
				PrefixLength:  ip.PrefixLength,
				MACAddress:    mac,
				State:         state,
				InterfaceName: iface.Name,
				VMName:        vm.Name,
			})
			if addr.Is4() {
				if !lowest4.IsValid() || addr.Less(lowest4) {
					lowest4 = addr
				}
			} else {
				if !lowest6.IsValid() || addr.Less(lowest6) {
					lowest6 = addr
				}
			}
		}
		node.Interfaces = append(node.Interfaces, inode)
	}
	// 主地址取各族最小地址，保证同一份快照多次装载结果一致。
	if lowest4.IsValid() {
		node.PrimaryIP4 = lowest4.String()
	}
	if lowest6.IsValid() {
		node.PrimaryIP6 = lowest6.String()
	}
	return node
}
