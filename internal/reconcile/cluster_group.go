package reconcile

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ClusterGroup struct {
	Name string

	Clusters []*Cluster
}

func (g *ClusterGroup) Kind() Kind { return KindClusterGroup }

func (g *ClusterGroup) Key() string { return g.Name }

func (g *ClusterGroup) Attributes(Settings) map[string]any {
	return map[string]any{}
}

func (g *ClusterGroup) Children() []Node {
	children := make([]Node, 0, len(g.Clusters))
	for _, c := range g.Clusters {
		children = append(children, c)
	}
	return children
}

func (g *ClusterGroup) Create(ctx context.Context, rt *Runtime) error {
	group, _, err := rt.store.Groups.GetOrCreate(ctx, g.Name)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			rt.Warn(ctx, "cluster group already exists", zap.String("name", g.Name))
			return errEntitySkipped
		}
		return err
	}
	rt.store.Tag(rt.settings.Tag, group)
	return rt.store.Groups.Save(ctx, group)
}

// Update 无事可做：集群组没有可比对属性。
func (g *ClusterGroup) Update(ctx context.Context, rt *Runtime, diff map[string]any) error {
	return nil
}

func (g *ClusterGroup) Delete(ctx context.Context, rt *Runtime) error {
	group, err := rt.store.Groups.GetByName(ctx, g.Name)
	if err != nil {
		return err
	}
	if group == nil {
		rt.Warn(ctx, "unable to match cluster group by name", zap.String("name", g.Name))
		return errEntitySkipped
	}
	rt.deleter.Register(KindClusterGroup, g.Name, func(ctx context.Context) error {
		return rt.store.Groups.Delete(ctx, group.Id)
	})
	return nil
}
