package wire

import (
	"fmt"
	"io"

	"github.com/fxamacker/cbor/v2"

	"github.com/simonhull/tagframe/internal/types"
)

// encMode is the CBOR encoder configured with Core Deterministic
// Encoding (RFC 8949 §4.2): sorted map keys, smallest integer
// encoding, no indefinite-length items.
var encMode cbor.EncMode

// decMode is the CBOR decoder. Unknown payload keys are ignored.
var decMode cbor.DecMode

func init() {
	var err error

	encMode, err = cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		panic("wire: CBOR encoder initialization failed: " + err.Error())
	}

	decMode, err = cbor.DecOptions{
		DupMapKey: cbor.DupMapKeyEnforcedAPF,
	}.DecMode()
	if err != nil {
		panic("wire: CBOR decoder initialization failed: " + err.Error())
	}
}

// cborRecord is the encoded form of one Record.
type cborRecord struct {
	_       struct{} `cbor:",toarray"`
	Kind    string
	ID      string
	Payload any
	Remove  bool
}

// cborTuple is the decoded form of one Record, payload still encoded.
type cborTuple struct {
	_       struct{} `cbor:",toarray"`
	Kind    string
	ID      string
	Payload cbor.RawMessage
	Remove  bool
}

// EncodeCBOR writes records as a CBOR array of 4-element arrays.
func EncodeCBOR(w io.Writer, records []types.Record) error {
	out := make([]cborRecord, 0, len(records))
	for _, rec := range records {
		payload, err := payloadOf(rec)
		if err != nil {
			return err
		}
		out = append(out, cborRecord{Kind: string(rec.Kind), ID: rec.ID, Payload: payload, Remove: rec.Remove})
	}

	if err := encMode.NewEncoder(w).Encode(out); err != nil {
		return fmt.Errorf("encoding records: %w", err)
	}
	return nil
}

// DecodeCBOR parses a CBOR array of 4-element arrays.
func DecodeCBOR(data []byte) ([]types.Record, error) {
	var items []cbor.RawMessage
	if err := decMode.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("parsing records: %w", err)
	}

	records := make([]types.Record, 0, len(items))
	for i, item := range items {
		var ct cborTuple
		if err := decMode.Unmarshal(item, &ct); err != nil {
			return nil, fmt.Errorf("record %d: parsing tuple: %w", i, err)
		}

		t := tuple{kind: ct.Kind, id: ct.ID, remove: ct.Remove}
		if !cborNull(ct.Payload) {
			t.payload = ct.Payload
		}

		rec, err := toRecord(t, decMode.Unmarshal)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

// cborNull reports whether raw is empty, null or undefined.
func cborNull(raw cbor.RawMessage) bool {
	return len(raw) == 0 || (len(raw) == 1 && (raw[0] == 0xf6 || raw[0] == 0xf7))
}
