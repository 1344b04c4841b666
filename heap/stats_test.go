package heap

import "bytes"
import "strings"
import "testing"

func TestHeapInfo(t *testing.T) {
	h := mkheap(t, 64, 16, nil)
	defer h.Release()

	// layout: [h][h==][h=][....][h][.. free ..]
	h.Alloc(16, false)
	h.Alloc(48, false)
	h.Alloc(32, false)
	hole, _ := h.Alloc(64, false)
	h.Alloc(16, false)
	h.Free(hole)

	info := h.Info()
	if info.Total != 64*16 {
		t.Errorf("expected %v, got %v", 64*16, info.Total)
	} else if info.Used != 7*16 {
		t.Errorf("expected %v, got %v", 7*16, info.Used)
	} else if info.Free != info.Total-info.Used {
		t.Errorf("expected %v, got %v", info.Total-info.Used, info.Free)
	} else if info.N1block != 2 {
		t.Errorf("expected %v, got %v", 2, info.N1block)
	} else if info.N2block != 1 {
		t.Errorf("expected %v, got %v", 1, info.N2block)
	} else if info.Maxblck != 3 {
		t.Errorf("expected %v, got %v", 3, info.Maxblck)
	} else if info.Maxfree != 64-7-4 {
		t.Errorf("expected %v, got %v", 64-7-4, info.Maxfree)
	}
}

func TestHeapStats(t *testing.T) {
	h := mkheap(t, 64, 16, nil)
	defer h.Release()

	ptr, _ := h.Alloc(16, false)
	h.Alloc(32, false)
	h.Free(ptr)
	h.CollectStart()
	h.CollectRoot(nil)
	h.CollectEnd()

	stats := h.Stats()
	if x := stats["n_allocs"].(int64); x != 2 {
		t.Errorf("expected %v, got %v", 2, x)
	} else if x := stats["n_frees"].(int64); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	} else if x := stats["n_collects"].(int64); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	} else if x := stats["n_reclaimed"].(int64); x != 1 {
		t.Errorf("expected %v, got %v", 1, x)
	} else if x := stats["allocblocks"].(int64); x != 0 {
		t.Errorf("expected %v, got %v", 0, x)
	} else if x := stats["nblocks"].(int64); x != 64 {
		t.Errorf("expected %v, got %v", 64, x)
	}
	allocsz := stats["h_allocsz"].(map[string]interface{})
	if x := allocsz["samples"].(int64); x != 2 {
		t.Errorf("expected %v, got %v", 2, x)
	} else if x := allocsz["max"].(int64); x != 32 {
		t.Errorf("expected %v, got %v", 32, x)
	}
	runlen := stats["h_runlen"].(map[string]interface{})
	if x := runlen["samples"].(int64); x != 2 {
		t.Errorf("expected %v, got %v", 2, x)
	} else if x := runlen["max"].(int64); x != 2 {
		t.Errorf("expected %v, got %v", 2, x)
	}
}

func TestHeapDump(t *testing.T) {
	h := mkheap(t, 128, 16, nil)
	defer h.Release()

	h.Alloc(16, false)
	h.Alloc(48, false)
	hole, _ := h.Alloc(32, false)
	h.Alloc(16, false)
	h.Free(hole)

	buf := bytes.NewBuffer(nil)
	h.Dump(buf)
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected %v lines, got %v", 2, len(lines))
	}
	prefix := "00000: hh==..h" + strings.Repeat(".", 64-7)
	if lines[0] != prefix {
		t.Errorf("expected %q, got %q", prefix, lines[0])
	}
	if lines[1] != "00040: "+strings.Repeat(".", 64) {
		t.Errorf("unexpected second line %q", lines[1])
	}
}

func TestHeapDumpMarked(t *testing.T) {
	h := mkheap(t, 64, 16, nil)
	defer h.Release()

	ptr, _ := h.Alloc(32, false)
	h.CollectStart()
	h.CollectRoot([]uintptr{uintptr(ptr)})

	buf := bytes.NewBuffer(nil)
	h.Dump(buf)
	if strings.HasPrefix(buf.String(), "00000: m=.") == false {
		t.Errorf("expected marked head, got %q", buf.String())
	}
	h.CollectEnd()

	buf.Reset()
	h.Dump(buf)
	if strings.HasPrefix(buf.String(), "00000: h=.") == false {
		t.Errorf("expected head after sweep, got %q", buf.String())
	}
}

func TestDumpinfo(t *testing.T) {
	h := mkheap(t, 64, 16, nil)
	defer h.Release()
	h.Alloc(100, false)
	h.Dumpinfo() // logging smoke test
}
