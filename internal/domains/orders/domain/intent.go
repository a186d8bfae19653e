package domain

// Intent is a requested modification of an existing order. Exactly one of
// CancelIntent or ChangeStatusIntent.
type Intent interface {
	isIntent()
}

// CancelIntent cancels the order and returns its stock.
type CancelIntent struct{}

// ChangeStatusIntent advances the order to Status.
type ChangeStatusIntent struct {
	Status Status
}

func (CancelIntent) isIntent()       {}
func (ChangeStatusIntent) isIntent() {}
