package errors

import "errors"

// ErrOptimisticLock conflit d'écriture : l'enregistrement a été modifié entre-temps
var ErrOptimisticLock = errors.New("données modifiées par une autre opération, veuillez réessayer")
