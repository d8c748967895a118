package reconcile

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Cluster struct {
	Name        string
	ClusterType string
	Group       string

	VirtualMachines []*VirtualMachine
	Hosts           []*Host
}

func (c *Cluster) Kind() Kind { return KindCluster }

func (c *Cluster) Key() string { return c.Name }

func (c *Cluster) Attributes(Settings) map[string]any {
	return map[string]any{
		attrClusterType: c.ClusterType,
		attrGroup:       c.Group,
	}
}

func (c *Cluster) Children() []Node {
	children := make([]Node, 0, len(c.VirtualMachines)+len(c.Hosts))
	for _, vm := range c.VirtualMachines {
		children = append(children, vm)
	}
	for _, h := range c.Hosts {
		children = append(children, h)
	}
	return children
}

func (c *Cluster) Create(ctx context.Context, rt *Runtime) error {
	clusterType, _, err := rt.store.ClusterTypes.GetOrCreate(ctx, rt.settings.VsphereType)
	if err != nil {
		return err
	}
	rt.store.Tag(rt.settings.Tag, clusterType)
	if err := rt.store.ClusterTypes.Save(ctx, clusterType); err != nil {
		return err
	}

	cluster, _, err := rt.store.Clusters.GetOrCreate(ctx, c.Name, clusterType.Id)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			rt.Warn(ctx, "cluster already exists", zap.String("name", c.Name))
			return errEntitySkipped
		}
		return err
	}
	if c.Group != "" {
		group, _, err := rt.store.Groups.GetOrCreate(ctx, c.Group)
		if err != nil {
			return err
		}
		cluster.GroupID = &group.Id
	}
	rt.store.Tag(rt.settings.Tag, cluster)
	return rt.store.Clusters.Save(ctx, cluster)
}

func (c *Cluster) Update(ctx context.Context, rt *Runtime, diff map[string]any) error {
	cluster, err := rt.store.Clusters.GetByName(ctx, c.Name)
	if err != nil {
		return err
	}
	if cluster == nil {
		rt.Warn(ctx, "unable to match cluster by name", zap.String("name", c.Name))
		return errEntitySkipped
	}
	if group, ok := diff[attrGroup].(string); ok && group != "" {
		g, _, err := rt.store.Groups.GetOrCreate(ctx, group)
		if err != nil {
			return err
		}
		cluster.GroupID = &g.Id
	}
	if _, ok := diff[attrClusterType]; ok {
		clusterType, _, err := rt.store.ClusterTypes.GetOrCreate(ctx, rt.settings.VsphereType)
		if err != nil {
			return err
		}
		cluster.TypeID = clusterType.Id
	}
	rt.store.Tag(rt.settings.Tag, cluster)
	return rt.store.Clusters.Save(ctx, cluster)
}

func (c *Cluster) Delete(ctx context.Context, rt *Runtime) error {
	cluster, err := rt.store.Clusters.GetByName(ctx, c.Name)
	if err != nil {
		return err
	}
	if cluster == nil {
		rt.Warn(ctx, "unable to match cluster by name", zap.String("name", c.Name))
		return errEntitySkipped
	}
	rt.deleter.Register(KindCluster, c.Name, func(ctx context.Context) error {
		return rt.store.Clusters.Delete(ctx, cluster.Id)
	})
	return nil
}
