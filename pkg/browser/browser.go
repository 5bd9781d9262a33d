package browser

import (
	"io"

	pkgbrowser "github.com/pkg/browser"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var openURL = pkgbrowser.OpenURL

func init() {
	// Launchers like xdg-open chatter on stdout; keep it out of piped output.
	pkgbrowser.Stdout = io.Discard
}

// Open shows url in the default browser. An empty url is ignored.
func Open(url string) error {
	if url == "" {
		return nil
	}
	log.Debugln("Opening", url)
	if err := openURL(url); err != nil {
		return errors.Wrapf(err, "open %s", url)
	}
	return nil
}
