// Package fallback answers well-known hardware/inventory queries from probe
// data alone, without the LLM (spec.md §4.8). Grounded on the topic-routing
// shape of original_source's anna_common/src/direct_answer.rs, narrowed to
// the seven query classes spec.md names.
package fallback

import "strings"

// QueryClass is the keyword-derived category of a user question.
type QueryClass string

const (
	ClassCPUInfo            QueryClass = "cpu_info"
	ClassRAMInfo            QueryClass = "ram_info"
	ClassGPUInfo            QueryClass = "gpu_info"
	ClassTopMemoryProcesses QueryClass = "top_memory_processes"
	ClassDiskSpace          QueryClass = "disk_space"
	ClassNetworkInterfaces  QueryClass = "network_interfaces"
	ClassUnknown            QueryClass = "unknown"
)

// classKeywords lists, in priority order, the keyword sets that resolve a
// query to a class. Order matters where terms overlap (e.g. "memory" could
// mean RAM or a process hogging memory); the most specific phrase wins.
var classKeywords = []struct {
	class    QueryClass
	keywords []string
}{
	{ClassTopMemoryProcesses, []string{"process using", "processes using", "which process", "what process", "top process", "hogging memory", "using the most memory", "using the most ram"}},
	{ClassRAMInfo, []string{"ram", "memory", "swap"}},
	{ClassCPUInfo, []string{"cpu", "processor", "core count", "cores"}},
	{ClassGPUInfo, []string{"gpu", "graphics card", "video card"}},
	{ClassDiskSpace, []string{"disk space", "disk usage", "free space", "storage space", "how much disk"}},
	{ClassNetworkInterfaces, []string{"network interface", "ip address", "nic", "ethernet", "wifi interface"}},
}

// Classify maps a natural-language query to a QueryClass by keyword,
// matching the most specific overlapping phrase first.
func Classify(query string) QueryClass {
	lower := strings.ToLower(query)
	for _, c := range classKeywords {
		for _, kw := range c.keywords {
			if strings.Contains(lower, kw) {
				return c.class
			}
		}
	}
	return ClassUnknown
}

// RequiredProbeID names the builtin probe whose output answers a class, or
// "" if the class requires no probe (only ClassUnknown).
func RequiredProbeID(class QueryClass) string {
	switch class {
	case ClassCPUInfo:
		return "cpu.info"
	case ClassRAMInfo:
		return "ram.info"
	case ClassGPUInfo:
		return "gpu.info"
	case ClassTopMemoryProcesses:
		return "process.top_memory"
	case ClassDiskSpace:
		return "disk.space"
	case ClassNetworkInterfaces:
		return "network.interfaces"
	default:
		return ""
	}
}
