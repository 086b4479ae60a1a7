package analytics

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"

	"github.com/socops/ticket-analytics/internal/domain"
)

var digitRun = regexp.MustCompile(`\d+`)

// KeyNumber extracts the first maximal run of digits from a ticket key.
func KeyNumber(key string) (int64, error) {
	run := digitRun.FindString(key)
	if run == "" {
		return 0, fmt.Errorf("%w: %q", ErrMalformedKey, key)
	}
	n, err := strconv.ParseInt(run, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrMalformedKey, key, err)
	}
	return n, nil
}

// Sort orders the view by the named field. Key sorts numerically; other
// fields sort by their type with missing values last. Ties keep their
// original order. Unknown field names return the view unchanged.
func Sort(v View, field string, ascending bool) (View, error) {
	f, ok := domain.ParseField(field)
	if !ok {
		return v, nil
	}

	idx := make([]int, len(v.idx))
	copy(idx, v.idx)
	out := View{ds: v.ds, idx: idx}

	switch {
	case f == domain.FieldKey:
		keys := make(map[int]int64, len(idx))
		for _, i := range idx {
			n, err := KeyNumber(v.ds.At(i).Key)
			if err != nil {
				return View{}, err
			}
			keys[i] = n
		}
		sort.SliceStable(idx, func(a, b int) bool {
			ka, kb := keys[idx[a]], keys[idx[b]]
			if ascending {
				return ka < kb
			}
			return ka > kb
		})
	case f.IsTemporal():
		sort.SliceStable(idx, func(a, b int) bool {
			ta, tb := v.ds.At(idx[a]).Time(f), v.ds.At(idx[b]).Time(f)
			if ta == nil || tb == nil {
				return ta != nil && tb == nil
			}
			if ascending {
				return ta.Before(*tb)
			}
			return ta.After(*tb)
		})
	default:
		sort.SliceStable(idx, func(a, b int) bool {
			sa, sb := v.ds.At(idx[a]).Text(f), v.ds.At(idx[b]).Text(f)
			if sa == "" || sb == "" {
				return sa != "" && sb == ""
			}
			if ascending {
				return sa < sb
			}
			return sa > sb
		})
	}
	return out, nil
}
