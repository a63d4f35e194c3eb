package codec

import (
	"github.com/mailru/easyjson/jwriter"
	"github.com/tidwall/gjson"

	"github.com/hmny-labs/jsastcodec/pkg/codespace"
	"github.com/hmny-labs/jsastcodec/pkg/grammar"
	"github.com/hmny-labs/jsastcodec/pkg/wire"
)

const builtinCount = 6

// writeHeader emits the header in the order spec'd for the encoder: the
// grammar JSON, P, the built-in count, the meta-rule rank histogram, and
// the string and numeric pools.
func writeHeader(w *wire.Writer, schema *grammar.Schema, paramCount int, buckets []codespace.RankBucket, strings []string, numbers []float64) error {
	grammarJSON, err := encodeGrammarJSON(schema)
	if err != nil {
		return err
	}
	if err := w.WriteVarUInt(uint64(len(grammarJSON))); err != nil {
		return err
	}
	if err := w.WriteRawBytes(grammarJSON); err != nil {
		return err
	}

	if err := w.WriteVarUInt(uint64(paramCount)); err != nil {
		return err
	}
	if err := w.WriteVarUInt(builtinCount); err != nil {
		return err
	}

	if err := writeRankHistogram(w, buckets); err != nil {
		return err
	}

	if err := w.WriteVarUInt(uint64(len(strings))); err != nil {
		return err
	}
	for _, s := range strings {
		if err := w.WriteVarUInt(uint64(len(s))); err != nil {
			return err
		}
	}
	for _, s := range strings {
		if err := w.WriteRawBytes([]byte(s)); err != nil {
			return err
		}
	}

	if err := w.WriteVarUInt(uint64(len(numbers))); err != nil {
		return err
	}
	for _, n := range numbers {
		if err := w.WriteFloat64(n); err != nil {
			return err
		}
	}
	return nil
}

// header is everything readHeader reconstructs before any tree body can be
// read.
type header struct {
	schema  *grammar.Schema
	space   *codespace.CodeSpace
	strings []string
	numbers []float64
}

func readHeader(r *wire.Reader) (*header, error) {
	jsonLen, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	jsonBytes, err := r.ReadRawBytes(int(jsonLen))
	if err != nil {
		return nil, err
	}
	schema, err := decodeGrammarJSON(jsonBytes)
	if err != nil {
		return nil, err
	}

	paramCount64, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	builtins, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	if builtins != builtinCount {
		return nil, &VersionMismatch{Got: int(builtins)}
	}

	buckets, err := readRankHistogram(r)
	if err != nil {
		return nil, err
	}

	stringCount, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	lengths := make([]int, stringCount)
	for i := range lengths {
		l, err := r.ReadVarUInt()
		if err != nil {
			return nil, err
		}
		lengths[i] = int(l)
	}
	strings := make([]string, stringCount)
	for i, l := range lengths {
		b, err := r.ReadRawBytes(l)
		if err != nil {
			return nil, err
		}
		strings[i] = string(b)
	}

	numberCount, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	numbers := make([]float64, numberCount)
	for i := range numbers {
		v, err := r.ReadFloat64()
		if err != nil {
			return nil, err
		}
		numbers[i] = v
	}

	kinds := schema.Kinds()
	ranks := make([]int, len(kinds))
	for i, k := range kinds {
		props, _ := schema.Properties(k)
		ranks[i] = len(props)
	}
	layout := codespace.NewDecodedMetaRuleLayout(buckets)
	space := codespace.NewCodeSpace(int(paramCount64), layout, kinds, ranks, len(strings), len(numbers))

	return &header{schema: schema, space: space, strings: strings, numbers: numbers}, nil
}

// writeRankHistogram emits the meta-rule rank histogram: the bucket count,
// then the first bucket's absolute rank, then every later bucket's rank
// delta (minus one, since ranks strictly increase) and count.
func writeRankHistogram(w *wire.Writer, buckets []codespace.RankBucket) error {
	if err := w.WriteVarUInt(uint64(len(buckets))); err != nil {
		return err
	}
	prevRank := 0
	for i, b := range buckets {
		if i == 0 {
			if err := w.WriteVarUInt(uint64(b.Rank)); err != nil {
				return err
			}
		} else {
			if err := w.WriteVarUInt(uint64(b.Rank - prevRank - 1)); err != nil {
				return err
			}
		}
		if err := w.WriteVarUInt(uint64(b.Count)); err != nil {
			return err
		}
		prevRank = b.Rank
	}
	return nil
}

func readRankHistogram(r *wire.Reader) ([]codespace.RankBucket, error) {
	n, err := r.ReadVarUInt()
	if err != nil {
		return nil, err
	}
	buckets := make([]codespace.RankBucket, n)
	rank := 0
	for i := range buckets {
		if i == 0 {
			v, err := r.ReadVarUInt()
			if err != nil {
				return nil, err
			}
			rank = int(v)
		} else {
			d, err := r.ReadVarUInt()
			if err != nil {
				return nil, err
			}
			rank += int(d) + 1
		}
		count, err := r.ReadVarUInt()
		if err != nil {
			return nil, err
		}
		buckets[i] = codespace.RankBucket{Rank: rank, Count: int(count)}
	}
	return buckets, nil
}

// encodeGrammarJSON writes the grammar as a JSON object, kind order exactly
// as recovered (insertion order) and each kind's properties in their
// already-sorted order. jwriter.Writer emits tokens directly to a byte
// buffer rather than building a map that a generic marshaler could
// re-sort, which is what keeps this byte-identical across runs.
func encodeGrammarJSON(schema *grammar.Schema) ([]byte, error) {
	var jw jwriter.Writer
	jw.RawByte('{')
	for i, kind := range schema.Kinds() {
		if i > 0 {
			jw.RawByte(',')
		}
		jw.String(kind)
		jw.RawByte(':')
		jw.RawByte('[')
		props, _ := schema.Properties(kind)
		for j, p := range props {
			if j > 0 {
				jw.RawByte(',')
			}
			jw.String(p)
		}
		jw.RawByte(']')
	}
	jw.RawByte('}')
	if jw.Error != nil {
		return nil, jw.Error
	}
	return jw.BuildBytes()
}

// decodeGrammarJSON parses a grammar JSON object back into a Schema.
// gjson.Result.ForEach walks object members in on-the-wire order, unlike
// encoding/json's map-based Unmarshal, so kind and property order survive
// the round trip without any extra bookkeeping.
func decodeGrammarJSON(data []byte) (*grammar.Schema, error) {
	root := gjson.ParseBytes(data)
	var entries []grammar.Entry
	root.ForEach(func(key, value gjson.Result) bool {
		var props []string
		value.ForEach(func(_, prop gjson.Result) bool {
			props = append(props, prop.String())
			return true
		})
		entries = append(entries, grammar.Entry{Kind: key.String(), Properties: props})
		return true
	})
	return grammar.NewSchema(entries), nil
}
