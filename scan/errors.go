package scan

import "fmt"

func errUnsupportedAsset(asset string) error {
	return fmt.Errorf("asset %q not in registry", asset)
}

func errNoSymbol(asset, exchangeID string) error {
	return fmt.Errorf("no symbol for asset %q on exchange %q", asset, exchangeID)
}
