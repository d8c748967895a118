package source

import (
	"testing"

	"vsync/internal/reconcile"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *Snapshot {
	return &Snapshot{
		Datacenters: []Datacenter{{
			Name: "DC1",
			Clusters: []Cluster{{
				Name: "C1",
				Hosts: []Host{
					{Name: "GTNESX01", Vendor: "Dell", Model: "PowerEdge R740"},
				},
				VirtualMachines: []VirtualMachine{{
					Name:       "web-01",
					PowerState: "POWERED_ON",
					VCPUs:      4,
					MemoryMB:   8192,
					DiskGB:     100,
					Interfaces: []Interface{{
						Name:       "eth0",
						MACAddress: "00:50:56:AA:BB:01",
						Connected:  true,
						IPAddresses: []IPAddress{
							{Address: "10.0.0.41", PrefixLength: 24, State: "PREFERRED"},
							{Address: "10.0.0.9", PrefixLength: 24, State: "UNKNOWN"},
							{Address: "fd00::9", PrefixLength: 64, State: "PREFERRED"},
						},
					}},
				}},
			}},
		}},
	}
}

func testBuilderSettings() reconcile.Settings {
	return reconcile.Settings{
		EnforceClusterGroupTopLevel: true,
		UseClusters:                 true,
		VsphereType:                 "VMware vSphere",
		DefaultClusterName:          "vSphere Default",
		Tag:                         "vsync",
	}
}

func TestBuildShapesTreeByDatacenter(t *testing.T) {
	tree := NewBuilder(testBuilderSettings()).Build(testSnapshot())

	require.Len(t, tree.Roots, 1)
	group, ok := tree.Roots[0].(*reconcile.ClusterGroup)
	require.True(t, ok)
	assert.Equal(t, "DC1", group.Name)

	require.Len(t, group.Clusters, 1)
	cluster := group.Clusters[0]
	assert.Equal(t, "C1", cluster.Name)
	assert.Equal(t, "VMware vSphere", cluster.ClusterType)
	assert.Equal(t, "DC1", cluster.Group)
	require.Len(t, cluster.VirtualMachines, 1)
	require.Len(t, cluster.Hosts, 1)
}

func TestBuildMapsVMFields(t *testing.T) {
	tree := NewBuilder(testBuilderSettings()).Build(testSnapshot())
	vm := tree.Roots[0].(*reconcile.ClusterGroup).Clusters[0].VirtualMachines[0]

	assert.Equal(t, "Active", vm.Status)
	assert.Equal(t, 4, vm.VCPUs)
	assert.Equal(t, 8192, vm.Memory)
	assert.Equal(t, 100, vm.Disk)
	assert.Equal(t, "C1", vm.Cluster)

	// 主地址取各族最小
	assert.Equal(t, "10.0.0.9", vm.PrimaryIP4)
	assert.Equal(t, "fd00::9", vm.PrimaryIP6)

	require.Len(t, vm.Interfaces, 1)
	iface := vm.Interfaces[0]
	assert.Equal(t, "00:50:56:aa:bb:01", iface.MACAddress) // MAC 统一小写
	assert.True(t, iface.Enabled)

	require.Len(t, iface.IPAddresses, 3)
	assert.Equal(t, "Active", iface.IPAddresses[0].State)   // PREFERRED
	assert.Equal(t, "Reserved", iface.IPAddresses[1].State) // UNKNOWN
	assert.Equal(t, "web-01", iface.IPAddresses[0].VMName)
	assert.Equal(t, "eth0", iface.IPAddresses[0].InterfaceName)
}

func TestBuildMapsHostFields(t *testing.T) {
	tree := NewBuilder(testBuilderSettings()).Build(testSnapshot())
	host := tree.Roots[0].(*reconcile.ClusterGroup).Clusters[0].Hosts[0]

	assert.Equal(t, "GTNESX01", host.Name)
	assert.Equal(t, "Hypervisor Host", host.DeviceRole)
	assert.Equal(t, "PowerEdge R740", host.DeviceType)
	assert.Equal(t, "gtn", host.Site) // 站点由设备名解析
	assert.Equal(t, "C1", host.Cluster)
}

func TestBuildUnknownPowerStateFallsBackToOffline(t *testing.T) {
	snap := testSnapshot()
	snap.Datacenters[0].Clusters[0].VirtualMachines[0].PowerState = "WEDGED"

	tree := NewBuilder(testBuilderSettings()).Build(snap)
	vm := tree.Roots[0].(*reconcile.ClusterGroup).Clusters[0].VirtualMachines[0]
	assert.Equal(t, "Offline", vm.Status)
}

func TestBuildWithoutClusterLayer(t *testing.T) {
	settings := testBuilderSettings()
	settings.UseClusters = false

	tree := NewBuilder(settings).Build(testSnapshot())
	require.Len(t, tree.Roots, 2)

	_, ok := tree.Roots[0].(*reconcile.VirtualMachine)
	assert.True(t, ok)
	_, ok = tree.Roots[1].(*reconcile.Host)
	assert.True(t, ok)
}

func TestBuildWithoutEnforcedTopLevel(t *testing.T) {
	settings := testBuilderSettings()
	settings.EnforceClusterGroupTopLevel = false

	tree := NewBuilder(settings).Build(testSnapshot())
	require.Len(t, tree.Roots, 1)
	cluster, ok := tree.Roots[0].(*reconcile.Cluster)
	require.True(t, ok)
	assert.Equal(t, "DC1", cluster.Group)
}
