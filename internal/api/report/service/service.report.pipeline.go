package reportsvc

import (
	"fmt"
	"time"

	"github.com/nadiag01/apre/internal/common"
	"go.mongodb.org/mongo-driver/bson"
)

// CompareOp là toán tử so sánh dùng trong MatchStage
type CompareOp string

const (
	OpEq  CompareOp = "$eq"
	OpGte CompareOp = "$gte"
	OpLt  CompareOp = "$lt"
)

// Condition là một điều kiện field <op> value
type Condition struct {
	Field string
	Op    CompareOp
	Value any
}

// Accumulator tính Name = Op(Field) trong GroupStage
type Accumulator struct {
	Name  string
	Op    string // hiện chỉ dùng "$sum"
	Field string
}

// Projection giữ, bỏ hoặc đổi tên một field
type Projection struct {
	Field   string
	Exclude bool   // field: 0
	From    string // field: "$From"; rỗng = field: 1
}

// SortKey là một khóa sắp xếp, Direction 1 tăng dần, -1 giảm dần
type SortKey struct {
	Field     string
	Direction int
}

// Stage là một bước của pipeline. Chỉ có 4 loại: Match, Group, Project, Sort.
type Stage interface {
	ToBSON() bson.D
	// rank quy định thứ tự bắt buộc match -> group -> project -> sort
	rank() int
}

// MatchStage lọc document; nhiều điều kiện trên cùng field được gộp lại
type MatchStage struct {
	Conditions []Condition
}

// GroupStage gom nhóm theo Key và tính các Accumulators
type GroupStage struct {
	Key          string
	Accumulators []Accumulator
}

// ProjectStage chọn và đổi tên field
type ProjectStage struct {
	Fields []Projection
}

// SortStage sắp xếp theo các khóa
type SortStage struct {
	Keys []SortKey
}

func (MatchStage) rank() int { return 1 }
func (GroupStage) rank() int { return 2 }
func (ProjectStage) rank() int { return 3 }
func (SortStage) rank() int { return 4 }

func (s MatchStage) ToBSON() bson.D {
	filter := bson.D{}
	index := map[string]int{}
	for _, c := range s.Conditions {
		var v any = c.Value
		if c.Op != OpEq {
			v = bson.D{{Key: string(c.Op), Value: c.Value}}
		}
		i, seen := index[c.Field]
		if !seen {
			index[c.Field] = len(filter)
			filter = append(filter, bson.E{Key: c.Field, Value: v})
			continue
		}
		// Gộp điều kiện khoảng: {date: {$gte: a, $lt: b}}
		prev, ok := filter[i].Value.(bson.D)
		if !ok {
			prev = bson.D{{Key: string(OpEq), Value: filter[i].Value}}
		}
		if c.Op == OpEq {
			prev = append(prev, bson.E{Key: string(OpEq), Value: c.Value})
		} else {
			prev = append(prev, v.(bson.D)...)
		}
		filter[i].Value = prev
	}
	return bson.D{{Key: "$match", Value: filter}}
}

func (s GroupStage) ToBSON() bson.D {
	group := bson.D{{Key: FieldID, Value: "$" + s.Key}}
	for _, a := range s.Accumulators {
		group = append(group, bson.E{Key: a.Name, Value: bson.D{{Key: a.Op, Value: "$" + a.Field}}})
	}
	return bson.D{{Key: "$group", Value: group}}
}

func (s ProjectStage) ToBSON() bson.D {
	project := bson.D{}
	for _, p := range s.Fields {
		var v any = 1
		switch {
		case p.Exclude:
			v = 0
		case p.From != "":
			v = "$" + p.From
		}
		project = append(project, bson.E{Key: p.Field, Value: v})
	}
	return bson.D{{Key: "$project", Value: project}}
}

func (s SortStage) ToBSON() bson.D {
	sort := bson.D{}
	for _, k := range s.Keys {
		sort = append(sort, bson.E{Key: k.Field, Value: k.Direction})
	}
	return bson.D{{Key: "$sort", Value: sort}}
}

// Pipeline là truy vấn của một báo cáo: hoặc distinct một field, hoặc chuỗi stage
type Pipeline struct {
	Kind       ReportKind
	Collection string
	Distinct   string
	Stages     []Stage
}

// IsDistinct cho biết pipeline là thao tác distinct
func (p Pipeline) IsDistinct() bool {
	return p.Distinct != ""
}

// Validate kiểm tra thứ tự stage và tính nhất quán của pipeline
func (p Pipeline) Validate() error {
	if p.Collection == "" {
		return fmt.Errorf("pipeline %s: collection is empty", p.Kind)
	}
	if p.IsDistinct() {
		if len(p.Stages) > 0 {
			return fmt.Errorf("pipeline %s: distinct pipeline must not have stages", p.Kind)
		}
		return nil
	}
	if len(p.Stages) == 0 {
		return fmt.Errorf("pipeline %s: no stages", p.Kind)
	}
	last := 0
	for i, s := range p.Stages {
		if s.rank() <= last {
			return fmt.Errorf("pipeline %s: stage %d out of order (match -> group -> project -> sort)", p.Kind, i)
		}
		last = s.rank()
	}
	return nil
}

// ToBSON dựng pipeline cho Aggregate
func (p Pipeline) ToBSON() bson.A {
	out := make(bson.A, 0, len(p.Stages))
	for _, s := range p.Stages {
		out = append(out, s.ToBSON())
	}
	return out
}

// Build dựng pipeline cố định cho từng loại báo cáo. loc dùng để tính mốc ngày.
func Build(params ReportParams, cols Collections, loc *time.Location) (Pipeline, error) {
	if params == nil {
		return Pipeline{}, unsupportedKind(KindUnknown)
	}
	if loc == nil {
		loc = time.UTC
	}

	var p Pipeline
	switch v := params.(type) {
	case DistinctParams:
		switch v.ReportKind {
		case DistinctRegions:
			p = Pipeline{Kind: DistinctRegions, Collection: cols.Sales, Distinct: FieldRegion}
		case DistinctCategories:
			p = Pipeline{Kind: DistinctCategories, Collection: cols.Sales, Distinct: FieldCategory}
		default:
			return Pipeline{}, unsupportedKind(v.ReportKind)
		}

	case RegionParams:
		p = Pipeline{
			Kind:       SalesByRegion,
			Collection: cols.Sales,
			Stages: []Stage{
				MatchStage{Conditions: []Condition{{Field: FieldRegion, Op: OpEq, Value: v.Region}}},
				GroupStage{Key: FieldSalesperson, Accumulators: []Accumulator{{Name: FieldTotalSales, Op: "$sum", Field: FieldAmount}}},
				ProjectStage{Fields: []Projection{
					{Field: FieldID, Exclude: true},
					{Field: FieldSalesperson, From: FieldID},
					{Field: FieldTotalSales},
				}},
				SortStage{Keys: []SortKey{{Field: FieldSalesperson, Direction: 1}}},
			},
		}

	case CategoryParams:
		// Không có khóa phụ: các dòng bằng totalSales giữ thứ tự store trả về
		p = Pipeline{
			Kind:       SalesByCategory,
			Collection: cols.Sales,
			Stages: []Stage{
				MatchStage{Conditions: []Condition{{Field: FieldCategory, Op: OpEq, Value: v.Category}}},
				GroupStage{Key: FieldCategory, Accumulators: []Accumulator{{Name: FieldTotalSales, Op: "$sum", Field: FieldAmount}}},
				ProjectStage{Fields: []Projection{
					{Field: FieldID, Exclude: true},
					{Field: FieldCategory, From: FieldID},
					{Field: FieldTotalSales},
				}},
				SortStage{Keys: []SortKey{{Field: FieldTotalSales, Direction: 1}}},
			},
		}

	case DateRangeParams:
		start := dayStart(v.Start, loc)
		endExclusive := dayStart(v.End, loc).AddDate(0, 0, 1)
		p = Pipeline{
			Kind:       CallDurationByDateRange,
			Collection: cols.AgentPerformance,
			Stages: []Stage{
				MatchStage{Conditions: []Condition{
					{Field: FieldDate, Op: OpGte, Value: start},
					{Field: FieldDate, Op: OpLt, Value: endExclusive},
				}},
				ProjectStage{Fields: []Projection{
					{Field: FieldID, Exclude: true},
					{Field: FieldAgentID},
					{Field: FieldDate},
					{Field: FieldCallDuration},
				}},
			},
		}

	case SalesDataParams:
		p = Pipeline{
			Kind:       SalesData,
			Collection: cols.Sales,
			Stages: []Stage{
				MatchStage{Conditions: []Condition{{Field: FieldChannel, Op: OpEq, Value: v.Selector}}},
				ProjectStage{Fields: []Projection{
					{Field: FieldID, Exclude: true},
					{Field: FieldSalesperson},
					{Field: FieldTotalSales, From: FieldAmount},
					{Field: FieldRegion},
					{Field: FieldCategory},
					{Field: FieldDate},
				}},
			},
		}

	default:
		return Pipeline{}, unsupportedKind(params.Kind())
	}

	if err := p.Validate(); err != nil {
		return Pipeline{}, common.WrapError(common.ErrCodeReportUnsupportedKind,
			fmt.Sprintf("Cấu hình báo cáo %s không hợp lệ", p.Kind),
			common.StatusBadRequest, details("kind", p.Kind.String()), err)
	}
	return p, nil
}

// dayStart trả về 00:00 của ngày chứa t, tính trong loc
func dayStart(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
