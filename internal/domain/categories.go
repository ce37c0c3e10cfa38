package domain

// Canonical category labels. The budget editor seeds its active list
// from ExpenseCategories; transactions may use free-text labels beyond
// these.
var ExpenseCategories = []string{
	"Diezmo/Ofrenda",
	"Vivienda",
	"Servicios",
	"Alimentación",
	"Transporte",
	"Deudas",
	"Salud",
	"Educación",
	"Entretenimiento",
	"Seguros",
	"Ropa",
	"Ahorro",
	"Varios",
}

// IncomeCategories are the labels offered for INCOME transactions.
var IncomeCategories = []string{
	"Salario",
	"Negocio",
	"Regalo",
	"Otros",
}
