// Package classify maps raw organization and device name strings to
// normalized site and service codes.
package classify

import (
	"regexp"
	"strings"
)

// Unknown is returned when no mapping applies. Callers treat it as a
// sentinel, never as an error.
const Unknown = "unknown"

type mapping struct {
	code     string
	patterns []*regexp.Regexp
}

func compile(patterns ...string) []*regexp.Regexp {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		out = append(out, regexp.MustCompile("(?i)"+p))
	}
	return out
}

// 注意：匹配采用“最后命中者生效”，表顺序即优先级（后面的覆盖前面的）。
// 该行为与既有数据产出一致，调整顺序前需要产品确认。
var organizationDCMappings = []mapping{
	{"GTN", compile(
		`^JUPITER$`,
		`Germantown`,
		`SOUTH AMERICA|JUPITER 2|HUGHES NOC|ENTERPRISE|EM7|T19 DDNS|E05-J2WW-GTN|SBSS|HUGHES RFT|GSDS|T19-NMS|SYSTEM|FACILITY|JUP2 RFT|HUGHES EXXONMOBILE|T19 RFT`,
		`^GTN`,
	)},
	{"T19", compile(`^T19-`)},
	{"GEE", compile(`^ROW`)},
	{"DET", compile(`Detroit`)},
	{"NLV", compile(`Vegas`)},
	{"split", compile(`^JUPITER-`, `^JUP2-`, `^J1`, `^J2`, `^J3`)},
}

var deviceNameDCMappings = []mapping{
	{"GTN", compile(`^GTN|^DSS|^VMWHN|ac5|ac3|a34|a36|ac303|b12`)},
	{"DET", compile(`^DET`)},
	{"GIL", compile(`GIL`)},
	{"SWA", compile(`SWA`)},
	{"NLV", compile(`^NLV|^NVX`)},
	{"BXI", compile(`^BXI`)},
	{"SV8", compile(`SV8`)},
	{"SLC", compile(`SLC`)},
	{"CHY", compile(`CHY`)},
	{"CH1", compile(`CH1`)},
	{"DA1", compile(`DA1`)},
	{"GIL", compile(`GIL`)},
	{"SEA", compile(`SEA`)},
}

var organizationServiceMappings = map[string]string{
	"jupiter": "j1",
	"jup2":    "j2",
}

var serviceMappings = []mapping{
	{"j1", compile(`^J1`)},
	{"j2", compile(`^J2`)},
	{"j3", compile(`^J3`)},
}

func normalizeService(service string) string {
	service = strings.ToLower(service)
	if mapped, ok := organizationServiceMappings[service]; ok {
		return mapped
	}
	return service
}

// ParseOrganization determines site and service from an organization name.
func ParseOrganization(organization string) (service, site string) {
	site = Unknown
	service = Unknown

	if organization == "Fusion" {
		service = "fsn"
	}

	for _, m := range organizationDCMappings {
		for _, pattern := range m.patterns {
			if !pattern.MatchString(organization) {
				continue
			}
			if m.code == "split" {
				// “J1-GTN”、“JUPITER-GTN” 等组织名自带 service-site 组合
				parts := strings.SplitN(strings.Replace(organization, " ", "-", 1), "-", 2)
				if len(parts) == 2 {
					service, site = parts[0], parts[1]
				}
			} else {
				site = m.code
			}
		}
	}

	return normalizeService(service), strings.ToLower(site)
}

// ParseNameForSite determines the site from a device name.
func ParseNameForSite(deviceName string) string {
	site := Unknown
	for _, m := range deviceNameDCMappings {
		for _, pattern := range m.patterns {
			if pattern.MatchString(deviceName) {
				site = m.code
			}
		}
	}
	return strings.ToLower(site)
}

// ParseNameForService determines the service from a device name.
// 与站点解析同样采用最后写入生效：未命中的项会把结果落回 "hns"。
func ParseNameForService(deviceName string) string {
	service := Unknown
	for _, m := range serviceMappings {
		for _, pattern := range m.patterns {
			if pattern.MatchString(deviceName) {
				service = m.code
			} else {
				service = "hns"
			}
		}
	}
	return service
}

// SiteAndService resolves the final (service, site) pair for a device,
// preferring the organization-derived values and falling back to the
// device name.
func SiteAndService(organization, deviceName string) (service, site string) {
	service, site = ParseOrganization(organization)
	switch {
	case service == Unknown && site == Unknown:
		service = ParseNameForService(deviceName)
		site = ParseNameForSite(deviceName)
	case service == Unknown:
		service = ParseNameForService(deviceName)
	case site == Unknown:
		site = ParseNameForSite(deviceName)
	}

	// 站点名末尾可能带 rfgw、snc 等位置标签，只取第一段
	site = strings.SplitN(strings.ReplaceAll(site, "-", " "), " ", 2)[0]

	return service, site
}
