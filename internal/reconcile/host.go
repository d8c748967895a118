package reconcile

import (
	"context"
	"errors"

	"vsync/internal/model"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// hostDefaultStatus 宿主机没有来源状态字段，创建时固定 Active。
const hostDefaultStatus = "Active"

type Host struct {
	Name       string
	DeviceRole string
	DeviceType string
	Site       string
	Cluster    string
}

func (h *Host) Kind() Kind { return KindHost }

func (h *Host) Key() string { return h.Name }

func (h *Host) Attributes(s Settings) map[string]any {
	attrs := map[string]any{
		attrDeviceRole: h.DeviceRole,
		attrDeviceType: h.DeviceType,
		attrSite:       h.Site,
	}
	if s.UseClusters {
		attrs[attrCluster] = h.Cluster
	}
	return attrs
}

func (h *Host) Children() []Node { return nil }

func (h *Host) Create(ctx context.Context, rt *Runtime) error {
	status, err := rt.store.Statuses.GetByName(ctx, hostDefaultStatus)
	if err != nil {
		return err
	}
	if status == nil {
		rt.Warn(ctx, "status not found for host", zap.String("host", h.Name), zap.String("status", hostDefaultStatus))
		return errEntitySkipped
	}
	deviceType, err := rt.store.DeviceTypes.GetByModel(ctx, h.DeviceType)
	if err != nil {
		return err
	}
	if deviceType == nil {
		rt.Warn(ctx, "device type not found for host", zap.String("host", h.Name), zap.String("device_type", h.DeviceType))
		return errEntitySkipped
	}
	role, err := rt.store.Roles.GetByName(ctx, h.DeviceRole)
	if err != nil {
		return err
	}
	if role == nil {
		rt.Warn(ctx, "device role not found for host", zap.String("host", h.Name), zap.String("device_role", h.DeviceRole))
		return errEntitySkipped
	}
	site, err := rt.store.Sites.GetBySlug(ctx, h.Site)
	if err != nil {
		return err
	}
	if site == nil {
		rt.Warn(ctx, "no site found", zap.String("host", h.Name), zap.String("site", h.Site))
		return errEntitySkipped
	}

	device := &model.Device{
		Name:     h.Name,
		StatusID: status.Id,
		RoleID:   role.Id,
		TypeID:   deviceType.Id,
		SiteID:   site.Id,
	}
	if rt.settings.UseClusters {
		cluster, err := rt.store.Clusters.GetByName(ctx, h.Cluster)
		if err != nil {
			return err
		}
		if cluster == nil {
			rt.Warn(ctx, "cluster not found for host", zap.String("host", h.Name), zap.String("cluster", h.Cluster))
			return errEntitySkipped
		}
		device.ClusterID = &cluster.Id
	}

	device, _, err = rt.store.Devices.UpdateOrCreate(ctx, device)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			rt.Warn(ctx, "host already exists", zap.String("name", h.Name))
			return errEntitySkipped
		}
		return err
	}
	rt.store.Tag(rt.settings.Tag, device)
	return rt.store.Devices.Save(ctx, device)
}

func (h *Host) Update(ctx context.Context, rt *Runtime, diff map[string]any) error {
	device, err := rt.store.Devices.GetByName(ctx, h.Name)
	if err != nil {
		return err
	}
	if device == nil {
		rt.Warn(ctx, "unable to match host by name", zap.String("name", h.Name))
		return errEntitySkipped
	}
	if dt, ok := diff[attrDeviceType].(string); ok {
		deviceType, err := rt.store.DeviceTypes.GetByModel(ctx, dt)
		if err != nil {
			return err
		}
		if deviceType == nil {
			rt.Warn(ctx, "device type not found for host", zap.String("host", h.Name), zap.String("device_type", dt))
			return errEntitySkipped
		}
		device.TypeID = deviceType.Id
	}
	if dr, ok := diff[attrDeviceRole].(string); ok {
		role, err := rt.store.Roles.GetByName(ctx, dr)
		if err != nil {
			return err
		}
		if role == nil {
			rt.Warn(ctx, "device role not found for host", zap.String("host", h.Name), zap.String("device_role", dr))
			return errEntitySkipped
		}
		device.RoleID = role.Id
	}
	if st, ok := diff[attrSite].(string); ok {
		site, err := rt.store.Sites.GetBySlug(ctx, st)
		if err != nil {
			return err
		}
		if site == nil {
			rt.Warn(ctx, "no site found", zap.String("host", h.Name), zap.String("site", st))
			return errEntitySkipped
		}
		device.SiteID = site.Id
	}
	if cl, ok := diff[attrCluster].(string); ok {
		cluster, err := rt.store.Clusters.GetByName(ctx, cl)
		if err != nil {
			return err
		}
		if cluster == nil {
			rt.Warn(ctx, "cluster not found for host", zap.String("host", h.Name), zap.String("cluster", cl))
			return errEntitySkipped
		}
		device.ClusterID = &cluster.Id
	}
	rt.store.Tag(rt.settings.Tag, device)
	return rt.store.Devices.Save(ctx, device)
}

func (h *Host) Delete(ctx context.Context, rt *Runtime) error {
	device, err := rt.store.Devices.GetByName(ctx, h.Name)
	if err != nil {
		return err
	}
	if device == nil {
		rt.Warn(ctx, "unable to match host by name", zap.String("name", h.Name))
		return errEntitySkipped
	}
	rt.deleter.Register(KindHost, h.Name, func(ctx context.Context) error {
		return rt.store.Devices.Delete(ctx, device.Id)
	})
	return nil
}
