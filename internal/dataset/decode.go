package dataset

import (
	"context"
	"encoding/binary"
	"fmt"
	"math"
	"sort"
	"strconv"

	"github.com/cespare/xxhash/v2"

	"market-report/internal/database"
	"market-report/internal/errors"
)

// Snapshot is the typed content of the three relations as read back from a
// store.
type Snapshot struct {
	Brands       []BrandRecord
	Independents []IndependentRecord
	Population   []PopulationRecord
}

func ReadSnapshot(ctx context.Context, db database.DatabaseDriver) (*Snapshot, error) {
	brands, err := ReadBrands(ctx, db)
	if err != nil {
		return nil, err
	}
	independents, err := ReadIndependents(ctx, db)
	if err != nil {
		return nil, err
	}
	population, err := ReadPopulation(ctx, db)
	if err != nil {
		return nil, err
	}
	return &Snapshot{Brands: brands, Independents: independents, Population: population}, nil
}

func ReadBrands(ctx context.Context, db database.DatabaseDriver) ([]BrandRecord, error) {
	return readRelation(ctx, db, GetBrandSchema(), func(t database.Tuple) (BrandRecord, error) {
		var (
			r   BrandRecord
			err error
		)
		if r.Restaurant, err = textValue(t[0]); err != nil {
			return r, err
		}
		if r.SegmentCategory, err = textValue(t[1]); err != nil {
			return r, err
		}
		if r.Sales, err = realValue(t[2]); err != nil {
			return r, err
		}
		if r.Units, err = integerValue(t[3]); err != nil {
			return r, err
		}
		r.YOYSales, err = textValue(t[4])
		return r, err
	})
}

func ReadIndependents(ctx context.Context, db database.DatabaseDriver) ([]IndependentRecord, error) {
	return readRelation(ctx, db, GetIndependentSchema(), func(t database.Tuple) (IndependentRecord, error) {
		var (
			r   IndependentRecord
			err error
		)
		if r.Restaurant, err = textValue(t[0]); err != nil {
			return r, err
		}
		if r.State, err = textValue(t[1]); err != nil {
			return r, err
		}
		r.Sales, err = realValue(t[2])
		return r, err
	})
}

func ReadPopulation(ctx context.Context, db database.DatabaseDriver) ([]PopulationRecord, error) {
	return readRelation(ctx, db, GetPopulationSchema(), func(t database.Tuple) (PopulationRecord, error) {
		var (
			r   PopulationRecord
			err error
		)
		if r.State, err = textValue(t[0]); err != nil {
			return r, err
		}
		if r.StateCode, err = textValue(t[1]); err != nil {
			return r, err
		}
		r.Census2020, err = integerValue(t[2])
		return r, err
	})
}

func readRelation[T any](ctx context.Context, db database.DatabaseDriver, rel database.Relation, decode func(database.Tuple) (T, error)) ([]T, error) {
	tuples, err := db.ReadRelation(ctx, rel)
	if err != nil {
		return nil, errors.StoreWrap(err, "read relation").WithDetails("%s", rel.Name)
	}
	out := make([]T, 0, len(tuples))
	for i, t := range tuples {
		if len(t) != len(rel.Columns) {
			return nil, errors.StoreWrap(fmt.Errorf("got %d values, want %d", len(t), len(rel.Columns)), "decode relation").WithDetails("%s row %d", rel.Name, i)
		}
		r, err := decode(t)
		if err != nil {
			return nil, errors.StoreWrap(err, "decode relation").WithDetails("%s row %d", rel.Name, i)
		}
		out = append(out, r)
	}
	return out, nil
}

// Backends hand values back in their own representation: MySQL returns
// []byte for everything, Mongo may return int32, SQLite may return int64 for
// a REAL column holding an integral value.

func textValue(v interface{}) (string, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case []byte:
		return string(x), nil
	case nil:
		return "", nil
	default:
		return "", fmt.Errorf("unexpected text value of type %T", v)
	}
}

func realValue(v interface{}) (float64, error) {
	switch x := v.(type) {
	case float64:
		return x, nil
	case float32:
		return float64(x), nil
	case int64:
		return float64(x), nil
	case int32:
		return float64(x), nil
	case int:
		return float64(x), nil
	case []byte:
		return strconv.ParseFloat(string(x), 64)
	case string:
		return strconv.ParseFloat(x, 64)
	default:
		return 0, fmt.Errorf("unexpected real value of type %T", v)
	}
}

func integerValue(v interface{}) (int64, error) {
	switch x := v.(type) {
	case int64:
		return x, nil
	case int32:
		return int64(x), nil
	case int:
		return int64(x), nil
	case float64:
		if x != math.Trunc(x) {
			return 0, fmt.Errorf("non-integral value %v", x)
		}
		return int64(x), nil
	case []byte:
		return strconv.ParseInt(string(x), 10, 64)
	case string:
		return strconv.ParseInt(x, 10, 64)
	default:
		return 0, fmt.Errorf("unexpected integer value of type %T", v)
	}
}

// Fingerprints returns an order-independent digest of each relation's
// content. Equal fingerprints across loads mean the relations hold the same
// multiset of rows.
func (s *Snapshot) Fingerprints() map[string]uint64 {
	return map[string]uint64{
		BrandsRelation:       Fingerprint(tuplesOf(s.Brands)),
		IndependentsRelation: Fingerprint(tuplesOf(s.Independents)),
		PopulationRelation:   Fingerprint(tuplesOf(s.Population)),
	}
}

func Fingerprint(rows []database.Tuple) uint64 {
	rowHashes := make([]uint64, len(rows))
	for i, row := range rows {
		d := xxhash.New()
		for _, v := range row {
			fmt.Fprintf(d, "%T:%v\x1f", v, v)
		}
		rowHashes[i] = d.Sum64()
	}
	sort.Slice(rowHashes, func(i, j int) bool { return rowHashes[i] < rowHashes[j] })

	d := xxhash.New()
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], uint64(len(rows)))
	_, _ = d.Write(buf[:])
	for _, h := range rowHashes {
		binary.LittleEndian.PutUint64(buf[:], h)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
