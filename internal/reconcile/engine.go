package reconcile

import (
	"context"
	"errors"
	"reflect"

	"vsync/pkg/log"

	"go.uber.org/zap"
)

// errEntitySkipped 表示节点已自行降级告警并放弃本次写入，调用方不计数、不再告警。
var errEntitySkipped = errors.New("entity skipped")

// Engine 对比来源树与目标库当前状态，逐节点分派 Create/Update，
// 删除先进桶、遍历结束后按依赖序统一刷出。
// 实体级失败一律降级为 warning，只有目标库不可用才让批次整体失败。
type Engine struct {
	store    *Adapter
	settings Settings
	logger   *log.Logger
}

func NewEngine(store *Adapter, settings Settings, logger *log.Logger) *Engine {
	return &Engine{
		store:    store,
		settings: settings,
		logger:   logger,
	}
}

// Result 汇总一个批次的各类操作计数。
type Result struct {
	Created  int `json:"created"`
	Updated  int `json:"updated"`
	Deleted  int `json:"deleted"`
	Warnings int `json:"warnings"`
}

// Run 执行一个批次：装载目标树、逐类实体全局 diff、刷出删除桶。
// 匹配按 Kind+Key 在整个批次范围内进行，树形只决定创建顺序；
// 换了父级的实体（虚机换集群、集群换组）走更新路径改写关联，而不是删了重建。
func (e *Engine) Run(ctx context.Context, source *Tree) (*Result, error) {
	target, err := e.loadTarget(ctx)
	if err != nil {
		return nil, err
	}

	rt := newRuntime(e.store, e.settings, e.logger)
	res := &Result{}

	src := flatten(source.Roots)
	tgt := flatten(target.Roots)
	// 创建顺序是删除顺序的逆序：父实体先于子实体落库。
	for i := len(deleteOrder) - 1; i >= 0; i-- {
		k := deleteOrder[i]
		e.diffKind(ctx, rt, src[k], tgt[k], res)
	}

	deleted, failed := rt.deleter.Flush(ctx)
	res.Deleted = deleted
	res.Warnings = rt.Warnings() + failed
	return res, nil
}

// flatten 把一棵实体森林摊平成按类别分组的节点表，保留文档序。
func flatten(roots []Node) map[Kind][]Node {
	out := make(map[Kind][]Node)
	var walk func(n Node)
	walk = func(n Node) {
		out[n.Kind()] = append(out[n.Kind()], n)
		for _, c := range n.Children() {
			walk(c)
		}
	}
	for _, r := range roots {
		walk(r)
	}
	return out
}

// diffKind 对齐同类实体的来源与目标全集：
// 来源独有 -> 创建；两侧都有 -> 属性差异更新；目标独有 -> 登记删除。
func (e *Engine) diffKind(ctx context.Context, rt *Runtime, src, tgt []Node, res *Result) {
	index := make(map[string]Node, len(tgt))
	for _, t := range tgt {
		index[t.Key()] = t
	}

	matched := make(map[string]bool, len(src))
	for _, s := range src {
		t, ok := index[s.Key()]
		if !ok {
			switch err := s.Create(ctx, rt); {
			case err == nil:
				res.Created++
			case errors.Is(err, errEntitySkipped):
			default:
				rt.Warn(ctx, "create failed, skipping entity",
					zap.String("kind", s.Kind().String()),
					zap.String("key", s.Key()),
					zap.Error(err))
			}
			continue
		}
		matched[s.Key()] = true

		diff := diffAttrs(s.Attributes(rt.settings), t.Attributes(rt.settings))
		if len(diff) == 0 {
			continue
		}
		switch err := s.Update(ctx, rt, diff); {
		case err == nil:
			res.Updated++
		case errors.Is(err, errEntitySkipped):
		default:
			rt.Warn(ctx, "update failed, skipping entity",
				zap.String("kind", s.Kind().String()),
				zap.String("key", s.Key()),
				zap.Error(err))
		}
	}

	for _, t := range tgt {
		if matched[t.Key()] {
			continue
		}
		if err := t.Delete(ctx, rt); err != nil && !errors.Is(err, errEntitySkipped) {
			rt.Warn(ctx, "delete registration failed, skipping entity",
				zap.String("kind", t.Kind().String()),
				zap.String("key", t.Key()),
				zap.Error(err))
		}
	}
}

// diffAttrs 返回来源侧发生变化的属性键值，目标侧多出的键不参与比较。
func diffAttrs(src, tgt map[string]any) map[string]any {
	diff := make(map[string]any)
	for k, sv := range src {
		if tv, ok := tgt[k]; !ok || !reflect.DeepEqual(sv, tv) {
			diff[k] = sv
		}
	}
	return diff
}
