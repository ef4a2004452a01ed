//go:build !release

package resources

const configDir = ".scorewatch"

func resourcePath() (string, error) {
	return configDir, nil
}
