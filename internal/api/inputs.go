package api

import (
	"encoding/json" // Custom JSON decoding
	"fmt"           // Error formatting
	"strconv"       // Numeric parsing
	"strings"       // String manipulation
	"unicode/utf8"  // Character counting

	"inventory_system/internal/domain" // Importing domain models
)

// MaxNameLength is the longest accepted name, counted in characters after trimming
const MaxNameLength = 254

// Input is the request body of a create or update call.
// Fields are pointers so that an absent field is told apart from a falsy one.
type Input[T any] interface {
	IsEmpty() bool   // No field was supplied at all
	Validate() error // Returns an *APIError describing the first problem
	Row() T          // Converts a validated input into the stored row
}

// KategoriInput is the body of POST/PUT /kategori
type KategoriInput struct {
	Nama *string `json:"nama"`
}

func (in KategoriInput) IsEmpty() bool { return in.Nama == nil }

func (in KategoriInput) Validate() error {
	if blank(in.Nama) {
		return ValidationError(MsgMissingAttributes)
	}
	if tooLong(*in.Nama) {
		return ValidationError("Kategori name cannot exceed 255 characters")
	}
	return nil
}

func (in KategoriInput) Row() domain.Kategori {
	return domain.Kategori{Nama: strings.TrimSpace(*in.Nama)}
}

// BarangInput is the body of POST/PUT /barang
type BarangInput struct {
	IDKategori *FlexUint `json:"id_kategori"`
	Nama       *string   `json:"nama"`
}

func (in BarangInput) IsEmpty() bool { return in.IDKategori == nil && in.Nama == nil }

func (in BarangInput) Validate() error {
	if in.IDKategori == nil || *in.IDKategori == 0 || blank(in.Nama) {
		return ValidationError(MsgMissingAttributes)
	}
	if tooLong(*in.Nama) {
		return ValidationError("Barang name cannot exceed 255 characters")
	}
	return nil
}

func (in BarangInput) Row() domain.Barang {
	return domain.Barang{IDKategori: uint(*in.IDKategori), Nama: strings.TrimSpace(*in.Nama)}
}

// DetailBarangInput is the body of POST/PUT /detail_barang.
// ruang_lokasi_barang and can_borrow only need to be present: 0 and false are legal values.
type DetailBarangInput struct {
	IDBarang           *FlexUint   `json:"id_barang"`
	SerialNumber       *FlexString `json:"serial_number"`
	GedungLokasiBarang *FlexString `json:"gedung_lokasi_barang"`
	RuangLokasiBarang  *FlexString `json:"ruang_lokasi_barang"`
	CanBorrow          *FlexBool   `json:"can_borrow"`

	keys int // Number of top-level keys in the body, known or not
}

// UnmarshalJSON decodes the fields and remembers how many keys the body carried
func (in *DetailBarangInput) UnmarshalJSON(b []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	type fields DetailBarangInput
	var f fields
	if err := json.Unmarshal(b, &f); err != nil {
		return err
	}
	*in = DetailBarangInput(f)
	in.keys = len(raw)
	return nil
}

// IsEmpty only holds for a body without any key; unknown keys count as content
func (in DetailBarangInput) IsEmpty() bool { return in.keys == 0 }

func (in DetailBarangInput) Validate() error {
	if in.IDBarang == nil || *in.IDBarang == 0 ||
		blankFlex(in.SerialNumber) || blankFlex(in.GedungLokasiBarang) ||
		in.RuangLokasiBarang == nil || in.CanBorrow == nil {
		return ValidationError(MsgMissingAttributes)
	}
	if tooLong(string(*in.SerialNumber)) {
		return ValidationError("Serial number cannot exceed 255 characters")
	}
	return nil
}

func (in DetailBarangInput) Row() domain.DetailBarang {
	return domain.DetailBarang{
		IDBarang:           uint(*in.IDBarang),
		SerialNumber:       strings.TrimSpace(string(*in.SerialNumber)),
		GedungLokasiBarang: strings.TrimSpace(string(*in.GedungLokasiBarang)),
		RuangLokasiBarang:  strings.TrimSpace(string(*in.RuangLokasiBarang)),
		CanBorrow:          bool(*in.CanBorrow),
	}
}

func blank(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}

func blankFlex(s *FlexString) bool {
	return s == nil || strings.TrimSpace(string(*s)) == ""
}

func tooLong(s string) bool {
	return utf8.RuneCountInString(strings.TrimSpace(s)) > MaxNameLength
}

// FlexString accepts a JSON string or number, e.g. a room given as 0
type FlexString string

func (f *FlexString) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// FlexUint accepts a non-negative integer given as a JSON number or numeric string
type FlexUint uint

func (f *FlexUint) UnmarshalJSON(b []byte) error {
	var s FlexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	v, err := strconv.ParseUint(strings.TrimSpace(string(s)), 10, 0)
	if err != nil {
		return fmt.Errorf("expected an id: %w", err)
	}
	*f = FlexUint(v)
	return nil
}

// FlexBool accepts true/false, 1/0 or their string forms
type FlexBool bool

func (f *FlexBool) UnmarshalJSON(b []byte) error {
	var v bool
	if err := json.Unmarshal(b, &v); err == nil {
		*f = FlexBool(v)
		return nil
	}
	var s FlexString
	if err := s.UnmarshalJSON(b); err != nil {
		return err
	}
	v, err := strconv.ParseBool(strings.TrimSpace(string(s)))
	if err != nil {
		return fmt.Errorf("expected a boolean: %w", err)
	}
	*f = FlexBool(v)
	return nil
}
