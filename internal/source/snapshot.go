package source

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Snapshot 是采集端导出的 vSphere 库存快照，按数据中心分层组织。
type Snapshot struct {
	CollectedAt time.Time    `json:"collected_at"`
	Datacenters []Datacenter `json:"datacenters"`
}

type Datacenter struct {
	Name     string    `json:"name"`
	Clusters []Cluster `json:"clusters"`
}

type Cluster struct {
	Name            string           `json:"name"`
	Hosts           []Host           `json:"hosts"`
	VirtualMachines []VirtualMachine `json:"virtual_machines"`
}

type Host struct {
	Name   string `json:"name"`
	Vendor string `json:"vendor"`
	Model  string `json:"model"`
}

type VirtualMachine struct {
	Name       string      `json:"name"`
	PowerState string      `json:"power_state"`
	VCPUs      int         `json:"vcpus"`
	MemoryMB   int         `json:"memory_mb"`
	DiskGB     int         `json:"disk_gb"`
	Interfaces []Interface `json:"interfaces"`
}

type Interface struct {
	Name        string      `json:"name"`
	MACAddress  string      `json:"mac_address"`
	Connected   bool        `json:"connected"`
	IPAddresses []IPAddress `json:"ip_addresses"`
}

type IPAddress struct {
	Address      string `json:"address"`
	PrefixLength int    `json:"prefix_length"`
	State        string `json:"state"`
}

// Load 读取并解析快照文件。
func Load(path string) (*Snapshot, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	var snap Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return &snap, nil
}
