package projections

import (
	"context"
	"sort"
	"strings"
	"time"

	storageStudent "gymdesk/internal/adapters/storage/student"
	"gymdesk/internal/application/listutil"
	"gymdesk/internal/domain/student"
)

// StudentListSortColumns are the sort keys the student list accepts.
var StudentListSortColumns = []string{"name", "due_amount", "next_due_date", "join_date"}

// GetStudentListQuery carries query parameters.
type GetStudentListQuery struct {
	Params listutil.ListParams
}

// StudentRow is one row of the admin student list.
type StudentRow struct {
	ID            string
	Name          string
	Phone         string
	AccessCode    string
	MonthlyFee    int
	DueAmount     int
	PaymentStatus string
	NextDueDate   time.Time
	JoinDate      time.Time
}

// GetStudentListResult carries the query result.
type GetStudentListResult struct {
	Students []StudentRow
	PageInfo listutil.PageInfo
}

// GetStudentListDeps holds dependencies for GetStudentList.
type GetStudentListDeps struct {
	StudentStore StudentStore
}

// QueryGetStudentList retrieves the admin student roster with search,
// status filtering, sorting, and paging. Search matches name or phone,
// case-insensitive.
// POST: Rows are sorted by the requested column (name ascending by
// default) and paged; PageInfo.Total counts all matches
func QueryGetStudentList(ctx context.Context, query GetStudentListQuery, deps GetStudentListDeps) (GetStudentListResult, error) {
	students, err := deps.StudentStore.List(ctx, storageStudent.ListFilter{Status: query.Params.Status})
	if err != nil {
		return GetStudentListResult{}, err
	}

	search := strings.ToLower(strings.TrimSpace(query.Params.Search))
	var matched []student.Student
	for _, s := range students {
		if search != "" &&
			!strings.Contains(strings.ToLower(s.Name), search) &&
			!strings.Contains(s.Phone, search) {
			continue
		}
		matched = append(matched, s)
	}

	sortStudents(matched, query.Params.SortParams)

	info := listutil.NewPageInfo(query.Params.Page, query.Params.PerPage, len(matched))
	start := info.Offset()
	end := start + info.PerPage
	if start > len(matched) {
		start = len(matched)
	}
	if end > len(matched) {
		end = len(matched)
	}

	rows := make([]StudentRow, 0, end-start)
	for _, s := range matched[start:end] {
		rows = append(rows, StudentRow{
			ID:            s.ID,
			Name:          s.Name,
			Phone:         s.Phone,
			AccessCode:    s.AccessCode,
			MonthlyFee:    s.MonthlyFee,
			DueAmount:     s.DueAmount,
			PaymentStatus: s.PaymentStatus,
			NextDueDate:   s.NextDueDate,
			JoinDate:      s.JoinDate,
		})
	}

	return GetStudentListResult{Students: rows, PageInfo: info}, nil
}

func sortStudents(students []student.Student, params listutil.SortParams) {
	col := params.Sort
	if col == "" {
		col = "name"
	}
	desc := params.Dir == "desc"

	sort.SliceStable(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if desc {
			a, b = b, a
		}
		switch col {
		case "due_amount":
			if a.DueAmount != b.DueAmount {
				return a.DueAmount < b.DueAmount
			}
		case "next_due_date":
			if !a.NextDueDate.Equal(b.NextDueDate) {
				return a.NextDueDate.Before(b.NextDueDate)
			}
		case "join_date":
			if !a.JoinDate.Equal(b.JoinDate) {
				return a.JoinDate.Before(b.JoinDate)
			}
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
