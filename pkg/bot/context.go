package bot

import "github.com/keepmind9/botpipe/pkg/api"

// Context is handed to every dispatched handler. It carries the shared API
// handle and the process-wide data store; both are safe for concurrent use.
type Context struct {
	API  api.API
	Data *DataMap
}

func newContext(a api.API, data *DataMap) *Context {
	return &Context{API: a, Data: data}
}
