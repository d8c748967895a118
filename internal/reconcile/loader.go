package reconcile

import (
	"context"
)

// refMaps 缓存一次装载期间用到的引用数据，避免逐记录回表。
type refMaps struct {
	statusName  map[int64]string
	siteSlug    map[int64]string
	roleName    map[int64]string
	typeModel   map[int64]string
	ctypeName   map[int64]string
	groupName   map[int64]string
	clusterName map[int64]string
}

// loadTarget 把目标库中带本配置同步标记的记录还原成与来源同构的树。
// 这里的任何错误都意味着目标库不可用，直接让批次失败。
func (e *Engine) loadTarget(ctx context.Context) (*Tree, error) {
	refs, err := e.loadRefs(ctx)
	if err != nil {
		return nil, err
	}
	tag := e.settings.Tag

	clusters, err := e.store.Clusters.ListByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	for _, c := range clusters {
		refs.clusterName[c.Id] = c.Name
	}

	vmNodes, err := e.loadVMs(ctx, tag, refs)
	if err != nil {
		return nil, err
	}
	hostNodes, err := e.loadHosts(ctx, tag, refs)
	if err != nil {
		return nil, err
	}

	tree := &Tree{}
	if !e.settings.UseClusters {
		// 无集群模式下来源树不含集群节点，虚机与宿主机直接作根。
		for _, vm := range vmNodes {
			tree.Roots = append(tree.Roots, vm.node)
		}
		for _, h := range hostNodes {
			tree.Roots = append(tree.Roots, h.node)
		}
		return tree, nil
	}

	clusterNodes := make(map[int64]*Cluster, len(clusters))
	ordered := make([]*Cluster, 0, len(clusters))
	for _, c := range clusters {
		node := &Cluster{
			Name:        c.Name,
			ClusterType: refs.ctypeName[c.TypeID],
		}
		if c.GroupID != nil {
			name, err := e.resolveGroupName(ctx, refs, *c.GroupID)
			if err != nil {
				return nil, err
			}
			node.Group = name
		}
		clusterNodes[c.Id] = node
		ordered = append(ordered, node)
	}
	for _, vm := range vmNodes {
		if node, ok := clusterNodes[vm.clusterID]; ok {
			node.VirtualMachines = append(node.VirtualMachines, vm.node)
		} else {
			// 所属集群已不在受管范围内，挂到根上保证仍会参与 diff。
			tree.Roots = append(tree.Roots, vm.node)
		}
	}
	for _, h := range hostNodes {
		if h.clusterID != nil {
			if node, ok := clusterNodes[*h.clusterID]; ok {
				node.Hosts = append(node.Hosts, h.node)
				continue
			}
		}
		tree.Roots = append(tree.Roots, h.node)
	}

	if !e.settings.EnforceClusterGroupTopLevel {
		for _, c := range ordered {
			tree.Roots = append(tree.Roots, c)
		}
		return tree, nil
	}

	groups, err := e.store.Groups.ListByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	groupNodes := make(map[int64]*ClusterGroup, len(groups))
	for _, g := range groups {
		node := &ClusterGroup{Name: g.Name}
		groupNodes[g.Id] = node
		tree.Roots = append(tree.Roots, node)
	}
	for i, c := range clusters {
		node := ordered[i]
		if c.GroupID != nil {
			if g, ok := groupNodes[*c.GroupID]; ok {
				g.Clusters = append(g.Clusters, node)
				continue
			}
		}
		tree.Roots = append(tree.Roots, node)
	}
	return tree, nil
}

func (e *Engine) loadRefs(ctx context.Context) (*refMaps, error) {
	refs := &refMaps{
		statusName:  make(map[int64]string),
		siteSlug:    make(map[int64]string),
		roleName:    make(map[int64]string),
		typeModel:   make(map[int64]string),
		ctypeName:   make(map[int64]string),
		groupName:   make(map[int64]string),
		clusterName: make(map[int64]string),
	}

	statuses, err := e.store.Statuses.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range statuses {
		refs.statusName[s.Id] = s.Name
	}
	sites, err := e.store.Sites.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, s := range sites {
		refs.siteSlug[s.Id] = s.Slug
	}
	roles, err := e.store.Roles.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, r := range roles {
		refs.roleName[r.Id] = r.Name
	}
	deviceTypes, err := e.store.DeviceTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, dt := range deviceTypes {
		refs.typeModel[dt.Id] = dt.Model
	}
	clusterTypes, err := e.store.ClusterTypes.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, ct := range clusterTypes {
		refs.ctypeName[ct.Id] = ct.Name
	}
	// 集群可能挂在未打标记的既有集群组下，组名按编号单独解析。
	groups, err := e.store.Groups.ListByTag(ctx, e.settings.Tag)
	if err != nil {
		return nil, err
	}
	for _, g := range groups {
		refs.groupName[g.Id] = g.Name
	}
	return refs, nil
}

// resolveGroupName 兜底解析未打标记的集群组，结果写回缓存。
func (e *Engine) resolveGroupName(ctx context.Context, refs *refMaps, id int64) (string, error) {
	if name, ok := refs.groupName[id]; ok {
		return name, nil
	}
	group, err := e.store.Groups.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if group == nil {
		return "", nil
	}
	refs.groupName[id] = group.Name
	return group.Name, nil
}

type loadedVM struct {
	node      *VirtualMachine
	clusterID int64
}

func (e *Engine) loadVMs(ctx context.Context, tag string, refs *refMaps) ([]*loadedVM, error) {
	records, err := e.store.VMs.ListByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	vms := make([]*loadedVM, 0, len(records))
	for _, rec := range records {
		node := &VirtualMachine{
			Name:    rec.Name,
			Status:  refs.statusName[rec.StatusID],
			VCPUs:   rec.VCPUs,
			Memory:  rec.Memory,
			Disk:    rec.Disk,
			Cluster: refs.clusterName[rec.ClusterID],
		}
		node.PrimaryIP4, err = e.resolveIPHost(ctx, rec.PrimaryIP4ID)
		if err != nil {
			return nil, err
		}
		node.PrimaryIP6, err = e.resolveIPHost(ctx, rec.PrimaryIP6ID)
		if err != nil {
			return nil, err
		}

		ifaces, err := e.store.Interfaces.ListByVM(ctx, rec.Id)
		if err != nil {
			return nil, err
		}
		for _, iface := range ifaces {
			inode := &VMInterface{
				Name:           iface.Name,
				VirtualMachine: rec.Name,
				Enabled:        iface.Enabled,
				MACAddress:     iface.MACAddress,
			}
			ips, err := e.store.IPs.ListByInterface(ctx, iface.Id)
			if err != nil {
				return nil, err
			}
			for _, ip := range ips {
				inode.IPAddresses = append(inode.IPAddresses, &IPAddress{
					Host:          ip.Host,
					PrefixLength:  ip.PrefixLength,
					MACAddress:    iface.MACAddress,
					State:         refs.statusName[ip.StatusID],
					InterfaceName: iface.Name,
					VMName:        rec.Name,
				})
			}
			node.Interfaces = append(node.Interfaces, inode)
		}
		vms = append(vms, &loadedVM{node: node, clusterID: rec.ClusterID})
	}
	return vms, nil
}

func (e *Engine) resolveIPHost(ctx context.Context, id *int64) (string, error) {
	if id == nil {
		return "", nil
	}
	ip, err := e.store.IPs.GetByID(ctx, *id)
	if err != nil {
		return "", err
	}
	if ip == nil {
		return "", nil
	}
	return ip.Host, nil
}

type loadedHost struct {
	node      *Host
	clusterID *int64
}

func (e *Engine) loadHosts(ctx context.Context, tag string, refs *refMaps) ([]*loadedHost, error) {
	records, err := e.store.Devices.ListByTag(ctx, tag)
	if err != nil {
		return nil, err
	}
	hosts := make([]*loadedHost, 0, len(records))
	for _, rec := range records {
		node := &Host{
			Name:       rec.Name,
			DeviceRole: refs.roleName[rec.RoleID],
			DeviceType: refs.typeModel[rec.TypeID],
			Site:       refs.siteSlug[rec.SiteID],
		}
		if rec.ClusterID != nil {
			node.Cluster = refs.clusterName[*rec.ClusterID]
		}
		hosts = append(hosts, &loadedHost{node: node, clusterID: rec.ClusterID})
	}
	return hosts, nil
}
