package index

import (
	"encoding/binary"
	"math"
	"strconv"

	domdoc "github.com/wynnteo/coursearch/internal/domain/document"
)

// buildHashFields converts a Document into a flat map[string]string for
// HSET. Every field is always present; blank attributes become empty
// strings so the hash layout is identical across documents.
func buildHashFields(doc domdoc.Document) map[string]string {
	return map[string]string{
		"name":            doc.Name(),
		"description":     doc.Description(),
		"instructor":      doc.Instructor(),
		"name_suggest":    doc.NameSuggest(),
		"category_id":     doc.CategoryID(),
		"sub_category_id": doc.SubCategoryID(),
		"language":        doc.Language(),
		"source":          doc.Source(),
		"level":           doc.Level(),
		"is_valid":        strconv.FormatBool(doc.IsValid()),
		"modified_at":     doc.ModifiedAt(),
		"embedding":       vectorToBytes(doc.Embedding()),
	}
}

// parseHashFields converts a flat hash map back into a Document.
func parseHashFields(id string, m map[string]string) domdoc.Document {
	isValid, _ := strconv.ParseBool(m["is_valid"])
	return domdoc.Reconstruct(
		id,
		m["name"], m["description"], m["instructor"], m["name_suggest"],
		m["category_id"], m["sub_category_id"], m["language"], m["source"], m["level"],
		isValid, m["modified_at"],
		bytesToVector(m["embedding"]),
	)
}

// vectorToBytes serializes []float32 to a binary string (4 bytes per float,
// little-endian), the layout RediSearch vector fields expect.
func vectorToBytes(v []float32) string {
	buf := make([]byte, len(v)*4)
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return string(buf)
}

// bytesToVector deserializes a binary string back to []float32.
func bytesToVector(s string) []float32 {
	b := []byte(s)
	if len(b)%4 != 0 {
		return nil
	}
	v := make([]float32, len(b)/4)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:]))
	}
	return v
}
