package parse

import "github.com/google/shlex"

// Split breaks a raw string into whitespace-delimited shell words.
// Conversion callbacks use it for sub-options whose value is itself a
// command line, e.g. args="-machine q35 -cpu host".
func Split(s string) ([]string, error) {
	args, err := shlex.Split(s)
	if err != nil {
		return nil, err
	}

	return args, nil
}
