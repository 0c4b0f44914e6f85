package zkproof

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/iden3/go-circom-prover-verifier/types"

	"dvotenative/internal/domain"
)

var errNoVariables = errors.New("proving key declares no variables")

type cachedKey struct {
	size  int64
	mtime time.Time
	pk    *types.Pk
}

// key returns the parsed proving key at path, parsing it at most once per
// file version while caching is enabled.
func (p *Prover) key(path string) (*types.Pk, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, domain.E("load proving key", domain.KindProvingKeyNotFound, err)
	}
	fi, err := os.Stat(abs)
	if err != nil {
		return nil, domain.E("load proving key", domain.KindProvingKeyNotFound, err)
	}
	if fi.IsDir() {
		return nil, domain.E("load proving key", domain.KindProvingKeyNotFound, fmt.Errorf("%s is a directory", abs))
	}

	if pk := p.cached(abs, fi); pk != nil {
		return pk, nil
	}

	flight := fmt.Sprintf("%s|%d|%d", abs, fi.Size(), fi.ModTime().UnixNano())
	v, err, shared := p.group.Do(flight, func() (any, error) {
		if pk := p.cached(abs, fi); pk != nil {
			return pk, nil
		}
		pk, err := p.readKey(abs)
		if err != nil {
			return nil, err
		}
		if p.cache {
			p.keys.Store(abs, &cachedKey{size: fi.Size(), mtime: fi.ModTime(), pk: pk})
		}
		return pk, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		p.log.Debug("proving key load shared", zapPath(abs))
	}
	return v.(*types.Pk), nil
}

func (p *Prover) cached(abs string, fi os.FileInfo) *types.Pk {
	if !p.cache {
		return nil
	}
	v, ok := p.keys.Load(abs)
	if !ok {
		return nil
	}
	c := v.(*cachedKey)
	if c.size != fi.Size() || !c.mtime.Equal(fi.ModTime()) {
		return nil
	}
	return c.pk
}

func (p *Prover) readKey(path string) (pk *types.Pk, err error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, domain.E("load proving key", domain.KindProvingKeyNotFound, err)
	}
	defer func() {
		if r := recover(); r != nil {
			pk, err = nil, domain.E("load proving key", domain.KindProvingKeyCorrupt, fmt.Errorf("parser panic: %v", r))
		}
	}()
	start := time.Now()
	pk, err = p.parse(data)
	if err != nil {
		return nil, domain.E("load proving key", domain.KindProvingKeyCorrupt, err)
	}
	if pk == nil || pk.NVars <= 0 {
		return nil, domain.E("load proving key", domain.KindProvingKeyCorrupt, errNoVariables)
	}
	p.log.Info("proving key loaded", zapPath(path), zapDuration(time.Since(start)))
	return pk, nil
}

// Forget drops every cached proving key.
func (p *Prover) Forget() {
	p.keys.Range(func(k, _ any) bool {
		p.keys.Delete(k)
		return true
	})
}
