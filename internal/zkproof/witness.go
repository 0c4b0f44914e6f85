package zkproof

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"

	"github.com/iden3/go-circom-prover-verifier/types"
	"github.com/iden3/go-iden3-crypto/utils"

	"dvotenative/internal/domain"
)

var (
	errEmptyWitness = errors.New("witness is empty")
	errWitnessOne   = errors.New("witness must start with 1")
)

type witnessDoc struct {
	Witness []json.RawMessage `json:"witness"`
}

// ParseWitness decodes a witness given either as a JSON array or as an
// object with a "witness" array. Elements are decimal strings or JSON
// integers, each a BN254 scalar field element; the first must be 1.
func ParseWitness(doc []byte) (types.Witness, error) {
	raw, err := witnessElements(doc)
	if err != nil {
		return nil, domain.E("parse witness", domain.KindInvalidInputs, err)
	}
	if len(raw) == 0 {
		return nil, domain.E("parse witness", domain.KindInvalidInputs, errEmptyWitness)
	}
	w := make(types.Witness, len(raw))
	for i, r := range raw {
		v, err := fieldElement(r)
		if err != nil {
			return nil, domain.E("parse witness", domain.KindInvalidInputs, fmt.Errorf("element %d: %w", i, err))
		}
		w[i] = v
	}
	if w[0].Cmp(big.NewInt(1)) != 0 {
		return nil, domain.E("parse witness", domain.KindInvalidInputs, errWitnessOne)
	}
	return w, nil
}

func witnessElements(doc []byte) ([]json.RawMessage, error) {
	doc = bytes.TrimSpace(doc)
	if len(doc) > 0 && doc[0] == '{' {
		var d witnessDoc
		if err := json.Unmarshal(doc, &d); err != nil {
			return nil, err
		}
		return d.Witness, nil
	}
	var arr []json.RawMessage
	if err := json.Unmarshal(doc, &arr); err != nil {
		return nil, err
	}
	return arr, nil
}

func fieldElement(r json.RawMessage) (*big.Int, error) {
	s := string(bytes.TrimSpace(r))
	if len(s) > 0 && s[0] == '"' {
		var err error
		if s, err = strconv.Unquote(s); err != nil {
			return nil, err
		}
	}
	if s == "" || s[0] < '0' || s[0] > '9' {
		return nil, fmt.Errorf("%q is not a decimal integer", s)
	}
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("%q is not a decimal integer", s)
	}
	if !utils.CheckBigIntInField(v) {
		return nil, fmt.Errorf("%s is outside the scalar field", s)
	}
	return v, nil
}
