package domain

import "fmt"

// Area field names.
const (
	FieldEmail       = "email"
	FieldTelefone    = "telefone"
	FieldEndereco    = "endereco"
	FieldComplemento = "complemento"
	FieldCidade      = "cidade"
	FieldEstado      = "estado"
	FieldCEP         = "cep"
)

// Pessoa field names.
const (
	FieldArea  = "area"
	FieldCargo = "cargo"
)

// AreaExcludedFromNav derives the navigation flag of an Area: areas
// without a description are hidden from navigation.
func AreaExcludedFromNav(description string) bool {
	return description == ""
}

// AreaEditorsGroupID is the id of the editors group owned by an Area.
func AreaEditorsGroupID(areaUID string) string {
	return areaUID + "-editores"
}

// AreaEditorsGroupTitle is the title of the editors group of an Area.
func AreaEditorsGroupTitle(areaTitle string) string {
	return fmt.Sprintf("Área %s: Editores", areaTitle)
}

// AreaEditorsGroupDescription is the description of the editors group of an Area.
func AreaEditorsGroupDescription(areaTitle string) string {
	return fmt.Sprintf("Grupo de editores da área %s", areaTitle)
}
