package entity

// AllEntities lists every persisted model, in dependency order.
func AllEntities() []interface{} {
	return []interface{}{
		&User{},
		&Mood{},
		&SymptomOption{},
		&Symptom{},
		&Appointment{},
		&Medication{},
		&Post{},
		&AuditLog{},
	}
}
