package auth

// Policy concentra todas las reglas de autorización en un solo lugar.
// Antes estas decisiones vivían como emails hardcodeados repartidos por el
// cliente; ahora todo pasa por el claim de rol verificado server-side.
type Policy struct{}

func (Policy) isStaff(c Claims) bool {
	return c.Role == RoleTrainer || c.Role == RoleAdmin
}

// CanManageUsers: alta/baja/listado de cuentas ajenas.
func (Policy) CanManageUsers(c Claims) bool { return c.Role == RoleAdmin }

// CanManageTrainers: perfiles de entrenadores.
func (Policy) CanManageTrainers(c Claims) bool { return c.Role == RoleAdmin }

// CanManageCatalog: servicios ofrecidos (ServiceLibrary).
func (Policy) CanManageCatalog(c Claims) bool { return c.Role == RoleAdmin }

// CanManageGallery: fotos de la galería.
func (Policy) CanManageGallery(c Claims) bool { return c.Role == RoleAdmin }

// CanWriteReports: los reportes de entrenamiento los escriben trainers/admin.
func (p Policy) CanWriteReports(c Claims) bool { return p.isStaff(c) }

// CanListAll: ver colecciones completas sin filtrar por dueño.
func (p Policy) CanListAll(c Claims) bool { return p.isStaff(c) }

// CanActFor: operar sobre recursos de un dueño dado. El dueño siempre puede
// sobre lo suyo; trainers/admin pueden sobre cualquiera.
func (p Policy) CanActFor(c Claims, ownerID string) bool {
	if ownerID != "" && c.UserID == ownerID {
		return true
	}
	return p.isStaff(c)
}
