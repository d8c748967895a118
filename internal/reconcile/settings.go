package reconcile

import "github.com/spf13/viper"

// Settings 在批次开始时解析一次，批次内保持不变。
// 其中 UseClusters 会改变 Host/VirtualMachine 的属性集合。
type Settings struct {
	EnforceClusterGroupTopLevel bool
	UseClusters                 bool
	VsphereType                 string
	DefaultClusterName          string
	Tag                         string
}

func NewSettings(conf *viper.Viper) Settings {
	conf.SetDefault("sync.enforce_cluster_group_top_level", true)
	conf.SetDefault("sync.use_clusters", true)
	conf.SetDefault("sync.vsphere_type", "VMware vSphere")
	conf.SetDefault("sync.default_cluster_name", "vSphere Default")
	conf.SetDefault("sync.tag", "vsync")

	return Settings{
		EnforceClusterGroupTopLevel: conf.GetBool("sync.enforce_cluster_group_top_level"),
		UseClusters:                 conf.GetBool("sync.use_clusters"),
		VsphereType:                 conf.GetString("sync.vsphere_type"),
		DefaultClusterName:          conf.GetString("sync.default_cluster_name"),
		Tag:                         conf.GetString("sync.tag"),
	}
}
