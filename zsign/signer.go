package zsign

import (
	"context"
	"fmt"
	"os"

	"github.com/otasign/otasign"
)

// Signer adapts Command to otasign.Signer.
type Signer struct {
	Command Command
}

func NewSigner(command string) *Signer {
	return &Signer{Command: Command(command)}
}

var (
	_ otasign.Signer = &Signer{}
)

func (s *Signer) Sign(ctx context.Context, req *otasign.SignRequest) (*otasign.SignResult, error) {
	output, err := s.Command.Sign(ctx, req.IPA, &SignOpts{
		Key:             req.Key,
		Password:        req.KeyPassword,
		MobileProvision: req.MobileProvision,
		Output:          req.Output,
	})
	if err != nil {
		return &otasign.SignResult{Diagnostics: output}, err
	}

	// A zero exit alone is not proof of success.
	if fi, err := os.Stat(req.Output); err != nil {
		return &otasign.SignResult{Diagnostics: output}, fmt.Errorf("%s exited 0 but produced no signed archive: %w", s.Command, err)
	} else if fi.Size() == 0 {
		return &otasign.SignResult{Diagnostics: output}, fmt.Errorf("%s exited 0 but produced an empty signed archive", s.Command)
	}

	return &otasign.SignResult{
		Path:        req.Output,
		Diagnostics: output,
	}, nil
}
