package format

import "fmt"

func errNotObject(format string) error {
	return fmt.Errorf("%s output requires an Object record, got something else", format)
}
