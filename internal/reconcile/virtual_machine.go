package reconcile

import (
	"context"
	"errors"
	"net/netip"

	"vsync/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type VirtualMachine struct {
	Name       string
	Status     string
	VCPUs      int
	Memory     int
	Disk       int
	Cluster    string
	PrimaryIP4 string
	PrimaryIP6 string

	Interfaces []*VMInterface
}

func (v *VirtualMachine) Kind() Kind { return KindVirtualMachine }

func (v *VirtualMachine) Key() string { return v.Name }

func (v *VirtualMachine) Attributes(s Settings) map[string]any {
	attrs := map[string]any{
		attrStatus:     v.Status,
		attrVCPUs:      v.VCPUs,
		attrMemory:     v.Memory,
		attrDisk:       v.Disk,
		attrPrimaryIP4: v.PrimaryIP4,
		attrPrimaryIP6: v.PrimaryIP6,
	}
	if s.UseClusters {
		attrs[attrCluster] = v.Cluster
	}
	return attrs
}

func (v *VirtualMachine) Children() []Node {
	children := make([]Node, 0, len(v.Interfaces))
	for _, iface := range v.Interfaces {
		children = append(children, iface)
	}
	return children
}

func (v *VirtualMachine) Create(ctx context.Context, rt *Runtime) error {
	status, err := rt.store.Statuses.GetByName(ctx, v.Status)
	if err != nil {
		return err
	}
	if status == nil {
		rt.Warn(ctx, "status not found for vm", zap.String("vm", v.Name), zap.String("status", v.Status))
		return errEntitySkipped
	}

	var cluster *model.Cluster
	if rt.settings.UseClusters {
		cluster, err = rt.store.Clusters.GetByName(ctx, v.Cluster)
		if err != nil {
			return err
		}
		if cluster == nil {
			rt.Warn(ctx, "cluster not found for vm", zap.String("vm", v.Name), zap.String("cluster", v.Cluster))
			return errEntitySkipped
		}
	} else {
		// 不使用集群的部署统一挂到默认集群下
		clusterType, _, err := rt.store.ClusterTypes.GetOrCreate(ctx, rt.settings.VsphereType)
		if err != nil {
			return err
		}
		rt.store.Tag(rt.settings.Tag, clusterType)
		if err := rt.store.ClusterTypes.Save(ctx, clusterType); err != nil {
			return err
		}
		cluster, _, err = rt.store.Clusters.GetOrCreate(ctx, rt.settings.DefaultClusterName, clusterType.Id)
		if err != nil {
			return err
		}
		rt.store.Tag(rt.settings.Tag, cluster)
		if err := rt.store.Clusters.Save(ctx, cluster); err != nil {
			return err
		}
	}

	vm, _, err := rt.store.VMs.GetOrCreate(ctx, &model.VirtualMachine{
		Name:      v.Name,
		StatusID:  status.Id,
		ClusterID: cluster.Id,
		VCPUs:     v.VCPUs,
		Memory:    v.Memory,
		Disk:      v.Disk,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			rt.Warn(ctx, "virtual machine already exists", zap.String("name", v.Name))
			return errEntitySkipped
		}
		return err
	}
	rt.store.Tag(rt.settings.Tag, vm)
	return rt.store.VMs.Save(ctx, vm)
}

func (v *VirtualMachine) Update(ctx context.Context, rt *Runtime, diff map[string]any) error {
	vm, err := rt.store.VMs.GetByName(ctx, v.Name)
	if err != nil {
		return err
	}
	if vm == nil {
		rt.Warn(ctx, "unable to match virtual machine by name", zap.String("name", v.Name))
		return errEntitySkipped
	}
	if st, ok := diff[attrStatus].(string); ok {
		status, err := rt.store.Statuses.GetByName(ctx, st)
		if err != nil {
			return err
		}
		if status == nil {
			rt.Warn(ctx, "status not found for vm", zap.String("vm", v.Name), zap.String("status", st))
			return errEntitySkipped
		}
		vm.StatusID = status.Id
	}
	if vcpus, ok := diff[attrVCPUs].(int); ok {
		vm.VCPUs = vcpus
	}
	if memory, ok := diff[attrMemory].(int); ok {
		vm.Memory = memory
	}
	if disk, ok := diff[attrDisk].(int); ok {
		vm.Disk = disk
	}
	if rt.settings.UseClusters {
		if cl, ok := diff[attrCluster].(string); ok {
			cluster, err := rt.store.Clusters.GetByName(ctx, cl)
			if err != nil {
				return err
			}
			if cluster == nil {
				rt.Warn(ctx, "cluster not found for vm", zap.String("vm", v.Name), zap.String("cluster", cl))
				return errEntitySkipped
			}
			if vm.ClusterID != cluster.Id {
				vm.ClusterID = cluster.Id
			}
		}
	}
	if _, ok4 := diff[attrPrimaryIP4]; ok4 {
		if err := v.assignPrimaryIPs(ctx, rt, vm, diff); err != nil {
			return err
		}
	} else if _, ok6 := diff[attrPrimaryIP6]; ok6 {
		if err := v.assignPrimaryIPs(ctx, rt, vm, diff); err != nil {
			return err
		}
	}

	rt.store.Tag(rt.settings.Tag, vm)
	return rt.store.VMs.Save(ctx, vm)
}

// assignPrimaryIPs 通过 VM 的网卡与其挂载的地址间接定位主地址。
// 主地址不是直接字段比对，而是穿过子实体得出的传递属性。
func (v *VirtualMachine) assignPrimaryIPs(ctx context.Context, rt *Runtime, vm *model.VirtualMachine, diff map[string]any) error {
	ifaces, err := rt.store.Interfaces.ListByVM(ctx, vm.Id)
	if err != nil {
		return err
	}
	for _, iface := range ifaces {
		ips, err := rt.store.IPs.ListByInterface(ctx, iface.Id)
		if err != nil {
			return err
		}
		for _, ip := range ips {
			addr, err := netip.ParseAddr(ip.Host)
			if err != nil {
				continue
			}
			attrKey := attrPrimaryIP6
			if addr.Is4() {
				attrKey = attrPrimaryIP4
			}
			want, ok := diff[attrKey].(string)
			if !ok || want != ip.Host {
				continue
			}
			if attrKey == attrPrimaryIP4 {
				vm.PrimaryIP4ID = &ip.Id
			} else {
				vm.PrimaryIP6ID = &ip.Id
			}
		}
	}
	return nil
}

func (v *VirtualMachine) Delete(ctx context.Context, rt *Runtime) error {
	vm, err := rt.store.VMs.GetByName(ctx, v.Name)
	if err != nil {
		return err
	}
	if vm == nil {
		rt.Warn(ctx, "unable to match virtual machine by name", zap.String("name", v.Name))
		return errEntitySkipped
	}
	rt.deleter.Register(KindVirtualMachine, v.Name, func(ctx context.Context) error {
		return rt.store.VMs.Delete(ctx, vm.Id)
	})
	return nil
}
