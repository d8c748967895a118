package reconcile

import (
	"context"
	"errors"

	"vsync/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type IPAddress struct {
	Host         string
	PrefixLength int
	MACAddress   string

	State         string
	InterfaceName string
	VMName        string
}

func (ip *IPAddress) Kind() Kind { return KindIPAddress }

func (ip *IPAddress) Key() string {
	return joinKey(ip.Host, itoa(ip.PrefixLength), ip.MACAddress)
}

func (ip *IPAddress) Attributes(Settings) map[string]any {
	return map[string]any{
		attrState:         ip.State,
		attrInterfaceName: ip.InterfaceName,
		attrVMName:        ip.VMName,
	}
}

func (ip *IPAddress) Children() []Node { return nil }

func (ip *IPAddress) Create(ctx context.Context, rt *Runtime) error {
	vm, err := rt.store.VMs.GetByName(ctx, ip.VMName)
	if err != nil {
		return err
	}
	if vm == nil {
		rt.Warn(ctx, "virtual machine not found for ip address",
			zap.String("ip", ip.Host), zap.String("vm", ip.VMName))
		return errEntitySkipped
	}
	iface, err := rt.store.Interfaces.GetByNameAndVM(ctx, ip.InterfaceName, vm.Id)
	if err != nil {
		return err
	}
	if iface == nil {
		rt.Warn(ctx, "interface not found for ip address",
			zap.String("ip", ip.Host), zap.String("interface", ip.InterfaceName))
		return errEntitySkipped
	}
	status, err := rt.store.Statuses.GetByName(ctx, ip.State)
	if err != nil {
		return err
	}
	if status == nil {
		rt.Warn(ctx, "status not found for ip address",
			zap.String("ip", ip.Host), zap.String("status", ip.State))
		return errEntitySkipped
	}

	rec, _, err := rt.store.IPs.GetOrCreate(ctx, &model.IPAddress{
		Host:         ip.Host,
		PrefixLength: ip.PrefixLength,
		StatusID:     status.Id,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			rt.Warn(ctx, "ip address already exists", zap.String("ip", ip.Host))
			return errEntitySkipped
		}
		return err
	}
	rec.InterfaceID = &iface.Id
	rt.store.Tag(rt.settings.Tag, rec)
	return rt.store.IPs.Save(ctx, rec)
}

func (ip *IPAddress) Update(ctx context.Context, rt *Runtime, diff map[string]any) error {
	rec, err := rt.store.IPs.GetByHostPrefix(ctx, ip.Host, ip.PrefixLength)
	if err != nil {
		return err
	}
	if rec == nil {
		rt.Warn(ctx, "unable to match ip address",
			zap.String("host", ip.Host), zap.Int("prefix_length", ip.PrefixLength))
		return errEntitySkipped
	}
	if state, ok := diff[attrState].(string); ok {
		status, err := rt.store.Statuses.GetByName(ctx, state)
		if err != nil {
			return err
		}
		if status == nil {
			rt.Warn(ctx, "status not found for ip address",
				zap.String("ip", ip.Host), zap.String("status", state))
			return errEntitySkipped
		}
		rec.StatusID = status.Id
	}
	// 网卡名或所属虚机任一变化都按来源侧重新定位挂载网卡
	_, ifaceChanged := diff[attrInterfaceName]
	_, vmChanged := diff[attrVMName]
	if ifaceChanged || vmChanged {
		vm, err := rt.store.VMs.GetByName(ctx, ip.VMName)
		if err != nil {
			return err
		}
		if vm != nil {
			iface, err := rt.store.Interfaces.GetByNameAndVM(ctx, ip.InterfaceName, vm.Id)
			if err != nil {
				return err
			}
			if iface != nil {
				rec.InterfaceID = &iface.Id
			}
		}
	}
	rt.store.Tag(rt.settings.Tag, rec)
	return rt.store.IPs.Save(ctx, rec)
}

func (ip *IPAddress) Delete(ctx context.Context, rt *Runtime) error {
	rec, err := rt.store.IPs.GetByHostPrefix(ctx, ip.Host, ip.PrefixLength)
	if err != nil {
		return err
	}
	if rec == nil {
		rt.Warn(ctx, "unable to match ip address",
			zap.String("host", ip.Host), zap.Int("prefix_length", ip.PrefixLength))
		return errEntitySkipped
	}
	rt.deleter.Register(KindIPAddress, ip.Key(), func(ctx context.Context) error {
		return rt.store.IPs.Delete(ctx, rec.Id)
	})
	return nil
}
