package collector

import "testing"

const sampleMeminfo = `MemTotal:       16384000 kB
MemFree:         2048000 kB
MemAvailable:    8192000 kB
Buffers:          512000 kB
Cached:          4096000 kB
SwapCached:        12345 kB
SwapTotal:       2000000 kB
SwapFree:        1500000 kB
Dirty:              4242 kB
Slab:             300000 kB
PageTables:        64000 kB
HugePages_Total:       0
`

func TestParseMeminfo(t *testing.T) {
	mem := parseMeminfo([]byte(sampleMeminfo))

	if mem.TotalKB != 16384000 {
		t.Fatalf("TotalKB: expected 16384000, got %d", mem.TotalKB)
	}
	if mem.FreeKB != 2048000 {
		t.Fatalf("FreeKB: expected 2048000, got %d", mem.FreeKB)
	}
	if mem.AvailableKB != 8192000 {
		t.Fatalf("AvailableKB: expected 8192000, got %d", mem.AvailableKB)
	}
	if mem.BuffersKB != 512000 || mem.CachedKB != 4096000 {
		t.Fatalf("unexpected buffers/cached: %d/%d", mem.BuffersKB, mem.CachedKB)
	}
	if mem.SwapTotalKB != 2000000 || mem.SwapFreeKB != 1500000 {
		t.Fatalf("unexpected swap counters: %d/%d", mem.SwapTotalKB, mem.SwapFreeKB)
	}
	if mem.SlabKB != 300000 || mem.PageTablesKB != 64000 {
		t.Fatalf("unexpected slab/pagetables: %d/%d", mem.SlabKB, mem.PageTablesKB)
	}
}

func TestParseMeminfoTolerance(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		totalKB uint64
	}{
		{"empty", "", 0},
		{"garbageLine", "not a counter at all\nMemTotal: 100 kB\n", 100},
		{"malformedValue", "MemTotal: banana kB\n", 0},
		{"missingUnit", "MemTotal: 100\n", 100},
		{"mbUnit", "MemTotal: 2 mB\n", 2048},
		{"unknownLabelOnly", "Bogus: 55 kB\n", 0},
		{"shortLine", "MemTotal:\n", 0},
	}
	for _, tc := range cases {
		mem := parseMeminfo([]byte(tc.input))
		if mem.TotalKB != tc.totalKB {
			t.Fatalf("%s: expected TotalKB %d, got %d", tc.name, tc.totalKB, mem.TotalKB)
		}
	}
}

const sampleRollup = `55b3f0000000-7ffd1c9ff000 ---p 00000000 00:00 0                          [rollup]
Rss:              150000 kB
Pss:              125000 kB
Pss_Anon:          90000 kB
Shared_Clean:      20000 kB
Shared_Dirty:       5000 kB
Private_Clean:     30000 kB
Private_Dirty:     95000 kB
Referenced:       140000 kB
Anonymous:         95000 kB
Swap:               1234 kB
SwapPss:             900 kB
`

func TestParseSmapsRollup(t *testing.T) {
	mem := parseSmapsRollup(42, []byte(sampleRollup))

	if mem.PID != 42 {
		t.Fatalf("expected pid 42, got %d", mem.PID)
	}
	if mem.RSSKB != 150000 || mem.PSSKB != 125000 {
		t.Fatalf("unexpected rss/pss: %d/%d", mem.RSSKB, mem.PSSKB)
	}
	if mem.SharedCleanKB != 20000 || mem.SharedDirtyKB != 5000 {
		t.Fatalf("unexpected shared counters: %d/%d", mem.SharedCleanKB, mem.SharedDirtyKB)
	}
	if mem.PrivateCleanKB != 30000 || mem.PrivateDirtyKB != 95000 {
		t.Fatalf("unexpected private counters: %d/%d", mem.PrivateCleanKB, mem.PrivateDirtyKB)
	}
	if mem.SwapKB != 1234 {
		t.Fatalf("expected SwapKB 1234, got %d", mem.SwapKB)
	}
}

func TestParseNodeMeminfo(t *testing.T) {
	input := `Node 1 MemTotal:       8192000 kB
Node 1 MemFree:        1024000 kB
Node 1 MemUsed:        7168000 kB
Node 1 FilePages:       500000 kB
`
	node := parseNodeMeminfo(1, []byte(input))
	if node.NodeID != 1 {
		t.Fatalf("expected node id 1, got %d", node.NodeID)
	}
	if node.MemTotalKB != 8192000 || node.MemFreeKB != 1024000 || node.MemUsedKB != 7168000 {
		t.Fatalf("unexpected node counters: %+v", node)
	}
}

func TestParseNodeMeminfoDerivesUsed(t *testing.T) {
	input := `Node 0 MemTotal:       8192000 kB
Node 0 MemFree:        3000000 kB
`
	node := parseNodeMeminfo(0, []byte(input))
	if node.MemUsedKB != 5192000 {
		t.Fatalf("expected derived MemUsed 5192000, got %d", node.MemUsedKB)
	}
}

func TestNormalizeKB(t *testing.T) {
	cases := []struct {
		name     string
		value    uint64
		unit     string
		expected uint64
	}{
		{"bareKB", 100, "kB", 100},
		{"noUnit", 100, "", 100},
		{"megabytes", 3, "mB", 3072},
		{"gigabytes", 1, "gB", 1048576},
		{"bytes", 4096, "B", 4},
		{"unknownUnit", 7, "pages", 7},
	}
	for _, tc := range cases {
		if got := normalizeKB(tc.value, tc.unit); got != tc.expected {
			t.Fatalf("%s: expected %d, got %d", tc.name, tc.expected, got)
		}
	}
}
