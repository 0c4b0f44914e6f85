package zkproof

import (
	"context"
	"encoding/json"
	"fmt"
	"math/big"
	"sync"
	"time"

	"github.com/iden3/go-circom-prover-verifier/parsers"
	"github.com/iden3/go-circom-prover-verifier/prover"
	"github.com/iden3/go-circom-prover-verifier/types"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"dvotenative/internal/domain"
)

// Prover implements domain.Prover on top of the iden3 Groth16 prover.
type Prover struct {
	log   *zap.Logger
	cache bool

	keys  sync.Map // absolute path -> *cachedKey
	group singleflight.Group

	parse    func([]byte) (*types.Pk, error)
	generate func(*types.Pk, types.Witness) ([]byte, error)
}

var _ domain.Prover = (*Prover)(nil)

// Option configures a Prover.
type Option func(*Prover)

// WithKeyCache toggles proving key caching. It is on by default.
func WithKeyCache(on bool) Option { return func(p *Prover) { p.cache = on } }

// New returns a Prover logging to log.
func New(log *zap.Logger, opts ...Option) *Prover {
	if log == nil {
		log = zap.NewNop()
	}
	p := &Prover{
		log:      log.Named("zkproof"),
		cache:    true,
		parse:    parsers.ParsePk,
		generate: groth16,
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

type proofDoc struct {
	Proof         json.RawMessage `json:"proof"`
	PublicSignals []string        `json:"publicSignals"`
}

// Prove parses inputs as a witness, loads the proving key and returns the
// proof document. Cancellation is observed before the proof is computed.
func (p *Prover) Prove(ctx context.Context, provingKeyPath string, inputs []byte) (domain.Proof, error) {
	if err := ctx.Err(); err != nil {
		return nil, domain.E("generate proof", domain.KindInternal, err)
	}
	w, err := ParseWitness(inputs)
	if err != nil {
		return nil, err
	}
	pk, err := p.key(provingKeyPath)
	if err != nil {
		return nil, err
	}
	if len(w) != pk.NVars {
		return nil, domain.E("generate proof", domain.KindInvalidInputs,
			fmt.Errorf("witness has %d elements, proving key expects %d", len(w), pk.NVars))
	}
	if err := ctx.Err(); err != nil {
		return nil, domain.E("generate proof", domain.KindInternal, err)
	}

	start := time.Now()
	out, err := p.run(pk, w)
	if err != nil {
		return nil, err
	}
	p.log.Debug("proof generated", zapPath(provingKeyPath), zapDuration(time.Since(start)))
	return domain.Proof(out), nil
}

func (p *Prover) run(pk *types.Pk, w types.Witness) (out []byte, err error) {
	defer func() {
		if r := recover(); r != nil {
			out, err = nil, domain.E("generate proof", domain.KindProvingKeyCorrupt, fmt.Errorf("prover panic: %v", r))
		}
	}()
	out, err = p.generate(pk, w)
	if err != nil {
		return nil, domain.E("generate proof", domain.KindProvingKeyCorrupt, err)
	}
	return out, nil
}

func groth16(pk *types.Pk, w types.Witness) ([]byte, error) {
	proof, pub, err := prover.GenerateProof(pk, w)
	if err != nil {
		return nil, err
	}
	return encodeProof(proof, pub)
}

func encodeProof(proof *types.Proof, pub []*big.Int) ([]byte, error) {
	pj, err := parsers.ProofToJson(proof)
	if err != nil {
		return nil, err
	}
	return json.Marshal(proofDoc{Proof: pj, PublicSignals: parsers.ArrayBigIntToString(pub)})
}

func zapPath(path string) zap.Field         { return zap.String("proving_key", path) }
func zapDuration(d time.Duration) zap.Field { return zap.Duration("took", d) }
