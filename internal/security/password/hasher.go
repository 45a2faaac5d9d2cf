package password

import (
	"errors"

	"github.com/alexedwards/argon2id"
)

// costCeiling bounds stored-hash params relative to policy; verify runs
// argon2 with whatever the PHC string says.
const costCeiling = 2

var ErrHashCost = errors.New("hash cost exceeds server limits")

type Hasher struct {
	policy Params
}

func NewHasher(p Params) *Hasher { return &Hasher{policy: p} }

// Hash returns a PHC string like `$argon2id$v=19$m=131072,t=3,p=1$...`
func (h *Hasher) Hash(plain string) (string, error) {
	p := argon2id.Params{
		Memory:      h.policy.Memory,
		Iterations:  h.policy.Iterations,
		Parallelism: h.policy.Parallelism,
		SaltLength:  h.policy.SaltLength,
		KeyLength:   h.policy.KeyLength,
	}
	return argon2id.CreateHash(plain, &p)
}

// Verify checks password vs PHC hash and also indicates if a rehash is recommended.
// Hashes whose m, t or p exceed costCeiling x policy fail with ErrHashCost
// before any key derivation.
func (h *Hasher) Verify(plain, phc string) (ok bool, needsRehash bool, err error) {
	stored, _, _, err := argon2id.DecodeHash(phc)
	if err != nil {
		return false, false, err
	}
	if h.tooCostly(stored) {
		return false, false, ErrHashCost
	}
	ok, err = argon2id.ComparePasswordAndHash(plain, phc)
	if err != nil || !ok {
		return ok, false, err
	}
	return ok, h.NeedsRehash(phc), nil
}

func (h *Hasher) NeedsRehash(phc string) bool {
	stored, _, _, err := argon2id.DecodeHash(phc)
	if err != nil {
		// Can't parse: treat as needs rehash.
		return true
	}
	return stored.Memory < h.policy.Memory ||
		stored.Iterations < h.policy.Iterations ||
		stored.Parallelism < h.policy.Parallelism ||
		stored.SaltLength < h.policy.SaltLength ||
		stored.KeyLength < h.policy.KeyLength
}

func (h *Hasher) tooCostly(p *argon2id.Params) bool {
	return uint64(p.Memory) > costCeiling*uint64(h.policy.Memory) ||
		uint64(p.Iterations) > costCeiling*uint64(h.policy.Iterations) ||
		uint64(p.Parallelism) > costCeiling*uint64(h.policy.Parallelism)
}
