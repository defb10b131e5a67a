package routr

import (
	"strings"

	"github.com/valyala/fasthttp"
)

// Static defines a GET endpoint which serves static assets below prefix
// from the local rootPath directory, using a path catch-all for the
// file path. For example with prefix "/src" and rootPath "./" a request
// for "/src/main.go" serves the local file "./main.go".
//
// Internally a fasthttp.FSHandler is used, therefore its own not-found
// response applies instead of the dispatcher's NotFound handler.
func Static(prefix, rootPath string, opts ...Option) *Endpoint {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	prefix = strings.TrimSuffix(prefix, "/")

	fileHandler := fasthttp.FSHandler(rootPath, strings.Count(prefix, "/"))

	return GET(prefix+"/{filepath:path}", fileHandler, opts...)
}

// StaticCustom is like Static but serves from the given file system
// settings.
func StaticCustom(prefix string, fs *fasthttp.FS, opts ...Option) *Endpoint {
	if !strings.HasPrefix(prefix, "/") {
		prefix = "/" + prefix
	}

	prefix = strings.TrimSuffix(prefix, "/")

	stripSlashes := strings.Count(prefix, "/")
	if fs.PathRewrite == nil && stripSlashes > 0 {
		fs.PathRewrite = fasthttp.NewPathSlashesStripper(stripSlashes)
	}

	return GET(prefix+"/{filepath:path}", fs.NewRequestHandler(), opts...)
}
