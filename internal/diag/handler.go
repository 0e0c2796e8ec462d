package diag

// HandlerFunc receives one diagnostic. userdata is whatever was stored on
// the Handler at registration time.
type HandlerFunc func(userdata any, function, file string, line int, errText, message string, editorNotify bool, kind Kind)

// Handler is one registered observer. Its identity is its address: the
// registry links and unlinks handlers by pointer, never by value, so the
// same *Handler can be registered at most once. The registry holds a
// non-owning reference; the registrant keeps ownership and must Unregister
// before letting the handler go.
type Handler struct {
	UserData any
	Func     HandlerFunc
}
