package lib

import "fmt"
import "math"
import "sort"
import "strconv"
import "strings"

// HistogramInt64 statistical histogram of int64 samples, with fixed
// width buckets between from and till. Samples below from land in the
// first bucket, samples at or above till in the last.
type HistogramInt64 struct {
	n         int64
	minval    int64
	maxval    int64
	sum       int64
	sumsq     float64
	histogram []int64
	init      bool
	from      int64
	till      int64
	width     int64
}

// NewhistogramInt64 return a new histogram object.
func NewhistogramInt64(from, till, width int64) *HistogramInt64 {
	from = (from / width) * width
	till = (till / width) * width
	h := &HistogramInt64{from: from, till: till, width: width}
	h.histogram = make([]int64, 1+((till-from)/width)+1)
	return h
}

// Add a sample to this histogram.
func (h *HistogramInt64) Add(sample int64) {
	h.n++
	h.sum += sample
	f := float64(sample)
	h.sumsq += f * f
	if h.init == false || sample < h.minval {
		h.minval = sample
		h.init = true
	}
	if h.maxval < sample {
		h.maxval = sample
	}

	if sample < h.from {
		h.histogram[0]++
	} else if sample >= h.till {
		h.histogram[len(h.histogram)-1]++
	} else {
		h.histogram[((sample-h.from)/h.width)+1]++
	}
}

func (h *HistogramInt64) Min() int64 {
	return h.minval
}

func (h *HistogramInt64) Max() int64 {
	return h.maxval
}

func (h *HistogramInt64) Samples() int64 {
	return h.n
}

func (h *HistogramInt64) Sum() int64 {
	return h.sum
}

func (h *HistogramInt64) Mean() int64 {
	if h.n == 0 {
		return 0
	}
	return int64(float64(h.sum) / float64(h.n))
}

func (h *HistogramInt64) Variance() float64 {
	if h.n == 0 {
		return 0
	}
	n_f, mean_f := float64(h.n), float64(h.Mean())
	return (h.sumsq / n_f) - (mean_f * mean_f)
}

func (h *HistogramInt64) SD() float64 {
	if h.n == 0 {
		return 0
	}
	return math.Sqrt(h.Variance())
}

func (h *HistogramInt64) Clone() *HistogramInt64 {
	newh := *h
	newh.histogram = make([]int64, len(h.histogram))
	copy(newh.histogram, h.histogram)
	return &newh
}

// Buckets return non-empty buckets as a map keyed by the bucket's
// lower bound, overflow samples under "+".
func (h *HistogramInt64) Buckets() map[string]int64 {
	m := make(map[string]int64)
	for i, v := range h.histogram {
		if v == 0 {
			continue
		}
		if i == len(h.histogram)-1 {
			m["+"] = v
		} else {
			m[strconv.Itoa(int(h.from+int64(i-1)*h.width))] = v
		}
	}
	return m
}

// Stats return a map of statistics and buckets, suitable for
// marshalling.
func (h *HistogramInt64) Stats() map[string]interface{} {
	buckets := map[string]interface{}{}
	for k, v := range h.Buckets() {
		buckets[k] = v
	}
	return map[string]interface{}{
		"samples":     h.Samples(),
		"min":         h.Min(),
		"max":         h.Max(),
		"mean":        h.Mean(),
		"variance":    h.Variance(),
		"stddeviance": h.SD(),
		"histogram":   buckets,
	}
}

// Logstring return Stats as a loggable string.
func (h *HistogramInt64) Logstring() string {
	stats := h.Stats()
	keys := []string{}
	for k := range stats {
		if k == "histogram" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	ss := []string{}
	for _, key := range keys {
		ss = append(ss, fmt.Sprintf(`"%v": %v`, key, stats[key]))
	}

	buckets := h.Buckets()
	hkeys := []int{}
	for k := range buckets {
		if k == "+" {
			continue
		}
		n, _ := strconv.Atoi(k)
		hkeys = append(hkeys, n)
	}
	sort.Ints(hkeys)
	hs := []string{}
	for _, k := range hkeys {
		ks := strconv.Itoa(k)
		hs = append(hs, fmt.Sprintf(`"%v": %v`, ks, buckets[ks]))
	}
	if v, ok := buckets["+"]; ok {
		hs = append(hs, fmt.Sprintf(`"+": %v`, v))
	}
	ss = append(ss, fmt.Sprintf(`"histogram": {%v}`, strings.Join(hs, ",")))
	return "{" + strings.Join(ss, ",") + "}"
}
