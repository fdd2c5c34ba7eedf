package flagtypes

import (
	"github.com/iver-wharf/wharf-pages/pkg/pages"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// ensure it conforms to the interface
var _ pflag.Value = new(Backend)

// Backend is an enum flag for selecting which hosting backend variant to
// deploy against.
type Backend pages.Backend

// String implements the pflag.Value and fmt.Stringer interfaces.
func (b *Backend) String() string {
	return string(*b)
}

// Set implements the pflag.Value interface.
func (b *Backend) Set(value string) error {
	backend, err := pages.ParseBackend(value)
	if err != nil {
		return err
	}
	*b = Backend(backend)
	return nil
}

// Type implements the pflag.Value interface.
// The value is only used in help text.
func (b *Backend) Type() string {
	return "backend"
}

// CompleteBackend returns completions for the Backend type.
func CompleteBackend(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return []string{
		string(pages.BackendManaged) + "\tLooks up the project by name, and creates it if missing",
		string(pages.BackendDirect) + "\tUses the project name as ID, without any create step",
	}, cobra.ShellCompDirectiveNoFileComp
}
