package password

import "github.com/5w1tchy/passkit/internal/config"

type Params struct {
	Memory      uint32 // kibibytes
	Iterations  uint32
	Parallelism uint8
	SaltLength  uint32
	KeyLength   uint32
}

// DefaultParams is ~128MB, t=3.
func DefaultParams() Params {
	return Params{
		Memory:      131072, // 128 MiB
		Iterations:  3,
		Parallelism: 1,
		SaltLength:  16,
		KeyLength:   32,
	}
}

// ParamsFromConfig applies ARGON2_* overrides; salt/key sizes stay fixed.
func ParamsFromConfig(cfg config.Config) Params {
	p := DefaultParams()
	if cfg.Argon2Memory > 0 {
		p.Memory = cfg.Argon2Memory
	}
	if cfg.Argon2Iter > 0 {
		p.Iterations = cfg.Argon2Iter
	}
	if cfg.Argon2Par > 0 {
		p.Parallelism = cfg.Argon2Par
	}
	return p
}
