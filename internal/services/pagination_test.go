package services

import (
	"errors"
	"math"
	"reflect"
	"testing"

	"github.com/Serg-Vas/financial-dashboard/internal/core"
)

func numberedLoans(n int) []core.LoanRecord {
	out := make([]core.LoanRecord, n)
	for i := range out {
		out[i] = core.LoanRecord{ID: int64(i + 1), User: "u"}
	}
	return out
}

func TestPaginate_ThirdPage(t *testing.T) {
	got, err := Paginate(numberedLoans(25), core.PageRequest{PageNumber: 3, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids(got), []int64{21, 22, 23, 24, 25}) {
		t.Fatalf("got %v", ids(got))
	}
}

func TestPaginate_OutOfRange(t *testing.T) {
	got, err := Paginate(numberedLoans(5), core.PageRequest{PageNumber: 999, PageSize: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty page, got %v", ids(got))
	}

	got, err = Paginate(nil, core.PageRequest{PageNumber: 1, PageSize: 10})
	if err != nil || len(got) != 0 {
		t.Fatalf("expected empty page for empty input, got %v (err=%v)", got, err)
	}
}

func TestPaginate_Coverage(t *testing.T) {
	for _, n := range []int{0, 1, 9, 10, 11, 25} {
		for _, size := range []int{1, 3, 10} {
			in := numberedLoans(n)
			var joined []core.LoanRecord
			for k := 1; k <= PageCount(n, size); k++ {
				page, err := Paginate(in, core.PageRequest{PageNumber: k, PageSize: size})
				if err != nil {
					t.Fatalf("n=%d size=%d page=%d: %v", n, size, k, err)
				}
				if len(page) == 0 {
					t.Fatalf("n=%d size=%d page=%d is empty", n, size, k)
				}
				joined = append(joined, page...)
			}
			if !reflect.DeepEqual(ids(joined), ids(in)) {
				t.Fatalf("n=%d size=%d: pages joined to %v", n, size, ids(joined))
			}
		}
	}
}

func TestPaginate_InvalidRequest(t *testing.T) {
	bad := []core.PageRequest{
		{PageNumber: 1, PageSize: 0},
		{PageNumber: 1, PageSize: -1},
		{PageNumber: 0, PageSize: 10},
		{PageNumber: -2, PageSize: 10},
	}
	for _, p := range bad {
		_, err := Paginate(numberedLoans(5), p)
		var pageErr *core.InvalidPageRequestError
		if !errors.As(err, &pageErr) {
			t.Fatalf("%+v: expected InvalidPageRequestError, got %v", p, err)
		}
		if pageErr.PageNumber != p.PageNumber || pageErr.PageSize != p.PageSize {
			t.Fatalf("%+v: error carries %+v", p, pageErr)
		}
	}
}

func TestPaginate_ResultIsIndependent(t *testing.T) {
	in := numberedLoans(3)
	page, err := Paginate(in, core.PageRequest{PageNumber: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	page[0].User = "changed"
	if in[0].User != "u" {
		t.Fatalf("page aliases the input slice")
	}
}

func TestPageCount(t *testing.T) {
	cases := []struct{ total, size, want int }{
		{0, 10, 0},
		{5, 10, 1},
		{10, 10, 1},
		{11, 10, 2},
		{25, 10, 3},
		{5, 0, 0},
		{3, math.MaxInt, 1},
		{math.MaxInt, math.MaxInt, 1},
		{math.MaxInt, 1, math.MaxInt},
	}
	for _, tc := range cases {
		if got := PageCount(tc.total, tc.size); got != tc.want {
			t.Errorf("PageCount(%d, %d) = %d, want %d", tc.total, tc.size, got, tc.want)
		}
	}
}

func TestPaginate_HugePageSize(t *testing.T) {
	for _, size := range []int{math.MaxInt, math.MaxInt - 1} {
		got, err := Paginate(numberedLoans(3), core.PageRequest{PageNumber: 1, PageSize: size})
		if err != nil {
			t.Fatalf("size %d: unexpected error: %v", size, err)
		}
		if !reflect.DeepEqual(ids(got), []int64{1, 2, 3}) {
			t.Fatalf("size %d: got %v", size, ids(got))
		}

		got, err = Paginate(numberedLoans(3), core.PageRequest{PageNumber: 2, PageSize: size})
		if err != nil || len(got) != 0 {
			t.Fatalf("size %d: second page should be empty, got %v, %v", size, ids(got), err)
		}
	}
}
