package crud

// Messages holds the user-facing strings of one feature. Fallbacks are used
// when the gateway error carries no message of its own.
type Messages struct {
	ErrorTitle   string
	SuccessTitle string

	LoadFailed string
	Saved      string
	SaveFailed string

	ConfirmTitle string
	ConfirmLabel string
	CancelLabel  string
	DeletedTitle string
	Deleted      string
	DeleteFailed string
	MissingID    string
}

// Feature describes one entity type to the generic Controller.
//
// Match must return true for every entity when the criteria are at their
// zero value. Clone must return an independent deep copy.
type Feature[E any, F any] struct {
	Name string

	Blank func() E
	Clone func(E) E
	ID    func(E) (int64, bool)
	// Label names the entity in confirmation prompts, e.g. `"Caneta"` or `operação #3`.
	Label func(E) string

	Match  func(E, F) bool
	Active func(F) bool
	// CloneCriteria copies criteria that hold slices; nil means F is a plain value.
	CloneCriteria func(F) F

	Validate func(E) error
	// Prepare normalises the selection right before it is submitted.
	Prepare func(*E)

	Messages Messages
}

func (f Feature[E, F]) withDefaults() Feature[E, F] {
	m := &f.Messages
	if m.ErrorTitle == "" {
		m.ErrorTitle = "Erro"
	}
	if m.SuccessTitle == "" {
		m.SuccessTitle = "Sucesso"
	}
	if m.ConfirmTitle == "" {
		m.ConfirmTitle = "Tem certeza?"
	}
	if m.ConfirmLabel == "" {
		m.ConfirmLabel = "Sim, excluir!"
	}
	if m.CancelLabel == "" {
		m.CancelLabel = "Cancelar"
	}
	if m.DeletedTitle == "" {
		m.DeletedTitle = "Excluído!"
	}
	if f.Validate == nil {
		f.Validate = func(E) error { return nil }
	}
	if f.Active == nil {
		f.Active = func(F) bool { return false }
	}
	if f.Match == nil {
		f.Match = func(E, F) bool { return true }
	}
	if f.CloneCriteria == nil {
		f.CloneCriteria = func(c F) F { return c }
	}
	return f
}
