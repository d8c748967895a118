package reconcile

import (
	"context"
	"errors"
	"net"

	"vsync/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// VMInterface 的标识内嵌所属虚拟机名：网卡不能脱离 VM 引用存在，
// 即便该 VM 尚未写入目标库。
type VMInterface struct {
	Name           string
	VirtualMachine string
	Enabled        bool
	MACAddress     string

	IPAddresses []*IPAddress
}

func (i *VMInterface) Kind() Kind { return KindVMInterface }

func (i *VMInterface) Key() string { return joinKey(i.Name, i.VirtualMachine) }

func (i *VMInterface) Attributes(Settings) map[string]any {
	return map[string]any{
		attrEnabled:    i.Enabled,
		attrMACAddress: i.MACAddress,
	}
}

func (i *VMInterface) Children() []Node {
	children := make([]Node, 0, len(i.IPAddresses))
	for _, ip := range i.IPAddresses {
		children = append(children, ip)
	}
	return children
}

func (i *VMInterface) Create(ctx context.Context, rt *Runtime) error {
	vm, err := rt.store.VMs.GetByName(ctx, i.VirtualMachine)
	if err != nil {
		return err
	}
	if vm == nil {
		rt.Warn(ctx, "virtual machine not found for interface",
			zap.String("interface", i.Name), zap.String("vm", i.VirtualMachine))
		return errEntitySkipped
	}

	iface, _, err := rt.store.Interfaces.GetOrCreate(ctx, &model.VMInterface{
		Name:             i.Name,
		VirtualMachineID: vm.Id,
		Enabled:          i.Enabled,
		MACAddress:       i.MACAddress,
	})
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			rt.Warn(ctx, "vm interface already exists",
				zap.String("name", i.Name), zap.String("vm", i.VirtualMachine))
			return errEntitySkipped
		}
		return err
	}
	rt.store.Tag(rt.settings.Tag, iface)
	return rt.store.Interfaces.Save(ctx, iface)
}

func (i *VMInterface) Update(ctx context.Context, rt *Runtime, diff map[string]any) error {
	vm, err := rt.store.VMs.GetByName(ctx, i.VirtualMachine)
	if err != nil {
		return err
	}
	if vm == nil {
		rt.Warn(ctx, "unable to match vm interface",
			zap.String("name", i.Name), zap.String("vm", i.VirtualMachine))
		return errEntitySkipped
	}
	iface, err := rt.store.Interfaces.GetByNameAndVM(ctx, i.Name, vm.Id)
	if err != nil {
		return err
	}
	if iface == nil {
		rt.Warn(ctx, "unable to match vm interface",
			zap.String("name", i.Name), zap.String("vm", i.VirtualMachine))
		return errEntitySkipped
	}
	if enabled, ok := diff[attrEnabled].(bool); ok {
		iface.Enabled = enabled
	}
	if mac, ok := diff[attrMACAddress].(string); ok {
		iface.MACAddress = mac
	}
	rt.store.Tag(rt.settings.Tag, iface)
	return rt.store.Interfaces.Save(ctx, iface)
}

func (i *VMInterface) Delete(ctx context.Context, rt *Runtime) error {
	vm, err := rt.store.VMs.GetByName(ctx, i.VirtualMachine)
	if err != nil {
		return err
	}
	if vm == nil {
		rt.Warn(ctx, "unable to match vm interface",
			zap.String("name", i.Name), zap.String("vm", i.VirtualMachine))
		return errEntitySkipped
	}

	// MAC 合法时参与匹配，采集侧偶尔会给占位值
	var iface *model.VMInterface
	if _, macErr := net.ParseMAC(i.MACAddress); macErr == nil {
		iface, err = rt.store.Interfaces.GetByNameVMAndMAC(ctx, i.Name, vm.Id, i.MACAddress)
	} else {
		iface, err = rt.store.Interfaces.GetByNameAndVM(ctx, i.Name, vm.Id)
	}
	if err != nil {
		return err
	}
	if iface == nil {
		rt.Warn(ctx, "unable to match vm interface",
			zap.String("name", i.Name), zap.String("vm", i.VirtualMachine))
		return errEntitySkipped
	}
	rt.deleter.Register(KindVMInterface, i.Key(), func(ctx context.Context) error {
		return rt.store.Interfaces.Delete(ctx, iface.Id)
	})
	return nil
}
