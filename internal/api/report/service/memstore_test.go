package reportsvc

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// memStore là DocumentStore trong bộ nhớ, hiểu đủ các stage mà Build sinh ra
type memStore struct {
	mu    sync.Mutex
	data  map[string][]bson.M
	calls int

	// err (nếu có) được trả về cho mọi truy vấn
	err error
	// block giữ truy vấn đến khi ctx kết thúc
	block bool
}

func newMemStore() *memStore {
	return &memStore{data: map[string][]bson.M{}}
}

func (s *memStore) insert(collection string, docs ...bson.M) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[collection] = append(s.data[collection], docs...)
}

func (s *memStore) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func (s *memStore) enter(ctx context.Context) error {
	s.mu.Lock()
	s.calls++
	err, block := s.err, s.block
	s.mu.Unlock()

	if block {
		<-ctx.Done()
		return ctx.Err()
	}
	return err
}

func (s *memStore) snapshot(collection string) []bson.M {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]bson.M, 0, len(s.data[collection]))
	for _, d := range s.data[collection] {
		c := bson.M{}
		for k, v := range d {
			c[k] = v
		}
		out = append(out, c)
	}
	return out
}

func (s *memStore) Distinct(ctx context.Context, collection, field string) ([]any, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	var out []any
	seen := map[any]bool{}
	for _, d := range s.snapshot(collection) {
		v, ok := d[field]
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out, nil
}

func (s *memStore) Aggregate(ctx context.Context, collection string, pipeline bson.A) ([]bson.M, error) {
	if err := s.enter(ctx); err != nil {
		return nil, err
	}
	docs := s.snapshot(collection)
	for _, raw := range pipeline {
		stage := raw.(bson.D)
		if len(stage) != 1 {
			return nil, fmt.Errorf("stage must have one operator: %v", stage)
		}
		spec := stage[0].Value.(bson.D)
		var err error
		switch stage[0].Key {
		case "$match":
			docs, err = evalMatch(docs, spec)
		case "$group":
			docs, err = evalGroup(docs, spec)
		case "$project":
			docs = evalProject(docs, spec)
		case "$sort":
			evalSort(docs, spec)
		default:
			err = fmt.Errorf("unsupported stage %s", stage[0].Key)
		}
		if err != nil {
			return nil, err
		}
	}
	return docs, nil
}

func evalMatch(docs []bson.M, filter bson.D) ([]bson.M, error) {
	var out []bson.M
	for _, d := range docs {
		ok := true
		for _, cond := range filter {
			match, err := matchValue(d[cond.Key], cond.Value)
			if err != nil {
				return nil, err
			}
			if !match {
				ok = false
				break
			}
		}
		if ok {
			out = append(out, d)
		}
	}
	return out, nil
}

func matchValue(actual, cond any) (bool, error) {
	ops, isOps := cond.(bson.D)
	if !isOps {
		return compare(actual, cond) == 0, nil
	}
	for _, op := range ops {
		c := compare(actual, op.Value)
		switch op.Key {
		case "$eq":
			if c != 0 {
				return false, nil
			}
		case "$gte":
			if actual == nil || c < 0 {
				return false, nil
			}
		case "$lt":
			if actual == nil || c >= 0 {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported operator %s", op.Key)
		}
	}
	return true, nil
}

func evalGroup(docs []bson.M, spec bson.D) ([]bson.M, error) {
	var keyExpr string
	var order []any
	groups := map[any]bson.M{}
	for _, e := range spec {
		if e.Key == "_id" {
			keyExpr = e.Value.(string)
		}
	}
	for _, d := range docs {
		key := d[strings.TrimPrefix(keyExpr, "$")]
		g, ok := groups[key]
		if !ok {
			g = bson.M{"_id": key}
			groups[key] = g
			order = append(order, key)
		}
		for _, e := range spec {
			if e.Key == "_id" {
				continue
			}
			acc := e.Value.(bson.D)[0]
			if acc.Key != "$sum" {
				return nil, fmt.Errorf("unsupported accumulator %s", acc.Key)
			}
			cur, _ := g[e.Key].(float64)
			g[e.Key] = cur + number(d[strings.TrimPrefix(acc.Value.(string), "$")])
		}
	}
	out := make([]bson.M, 0, len(order))
	for _, k := range order {
		out = append(out, groups[k])
	}
	return out, nil
}

func evalProject(docs []bson.M, spec bson.D) []bson.M {
	out := make([]bson.M, 0, len(docs))
	for _, d := range docs {
		p := bson.M{}
		keepID := true
		for _, e := range spec {
			switch v := e.Value.(type) {
			case int:
				if e.Key == "_id" && v == 0 {
					keepID = false
					continue
				}
				if val, ok := d[e.Key]; ok {
					p[e.Key] = val
				}
			case string:
				if val, ok := d[strings.TrimPrefix(v, "$")]; ok {
					p[e.Key] = val
				}
			}
		}
		if keepID {
			if id, ok := d["_id"]; ok {
				p["_id"] = id
			}
		}
		out = append(out, p)
	}
	return out
}

func evalSort(docs []bson.M, spec bson.D) {
	sort.SliceStable(docs, func(i, j int) bool {
		for _, k := range spec {
			c := compare(docs[i][k.Key], docs[j][k.Key])
			if c == 0 {
				continue
			}
			if k.Value.(int) < 0 {
				return c > 0
			}
			return c < 0
		}
		return false
	})
}

func number(v any) float64 {
	switch n := v.(type) {
	case int:
		return float64(n)
	case int32:
		return float64(n)
	case int64:
		return float64(n)
	case float64:
		return n
	}
	return 0
}

func compare(a, b any) int {
	switch x := a.(type) {
	case string:
		y, _ := b.(string)
		return strings.Compare(x, y)
	case time.Time:
		y, _ := b.(time.Time)
		return x.Compare(y)
	case int, int32, int64, float64:
		fx, fy := number(x), number(b)
		switch {
		case fx < fy:
			return -1
		case fx > fy:
			return 1
		}
		return 0
	case nil:
		if b == nil {
			return 0
		}
		return -1
	}
	if a == b {
		return 0
	}
	return -1
}
