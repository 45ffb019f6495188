package scenario

// Example is the six-node city used to introduce the engine. Hospitals sit
// at D and F; everything else is a street corner.
func Example() Scenario {
	return Scenario{
		Name: "example",
		Places: []Place{
			{ID: "A", Kind: AmbulanceBase},
			{ID: "B", Kind: Street},
			{ID: "C", Kind: Street},
			{ID: "D", Kind: Hospital},
			{ID: "E", Kind: Street},
			{ID: "F", Kind: Hospital},
		},
		Roads: []Road{
			{ID: 1, From: "A", To: "B", Minutes: 4},
			{ID: 2, From: "A", To: "C", Minutes: 2},
			{ID: 3, From: "B", To: "C", Minutes: 1},
			{ID: 4, From: "B", To: "D", Minutes: 5},
			{ID: 5, From: "C", To: "D", Minutes: 8},
			{ID: 6, From: "C", To: "E", Minutes: 10},
			{ID: 7, From: "D", To: "E", Minutes: 2},
			{ID: 8, From: "E", To: "F", Minutes: 3},
		},
	}
}

// Marica is the emergency map of Maricá city centre.
func Marica() Scenario {
	return Scenario{
		Name: "marica",
		Places: []Place{
			{ID: "Hospital Conde Modesto Leal", Kind: Hospital},
			{ID: "82ª Delegacia de Polícia", Kind: Police},
			{ID: "Base de Ambulância Centro", Kind: AmbulanceBase},
			{ID: "Praça Orlando de Barros Pimentel", Kind: Square},
			{ID: "Praça Conselheiro Macedo Soares", Kind: Square},
			{ID: "Rua Álvares de Castro", Kind: Street},
			{ID: "Rua Abreu Rangel", Kind: Street},
			{ID: "Avenida Roberto Silveira", Kind: Street},
			{ID: "Rua Clímaco Pereira", Kind: Street},
			{ID: "Rua Domício da Gama", Kind: Street},
			{ID: "Rua Ribeiro de Almeida", Kind: Street},
			{ID: "Rua Carlos Rangel", Kind: Street},
			{ID: "Rua Nossa Senhora do Amparo", Kind: Street},
		},
		Roads: []Road{
			{ID: 1, From: "Base de Ambulância Centro", To: "Rua Álvares de Castro", Minutes: 2},
			{ID: 2, From: "Base de Ambulância Centro", To: "Rua Carlos Rangel", Minutes: 3},
			{ID: 3, From: "Hospital Conde Modesto Leal", To: "Praça Orlando de Barros Pimentel", Minutes: 2},
			{ID: 4, From: "Hospital Conde Modesto Leal", To: "Rua Clímaco Pereira", Minutes: 2},
			{ID: 5, From: "82ª Delegacia de Polícia", To: "Avenida Roberto Silveira", Minutes: 3},
			{ID: 6, From: "Praça Orlando de Barros Pimentel", To: "Rua Álvares de Castro", Minutes: 1},
			{ID: 7, From: "Praça Orlando de Barros Pimentel", To: "Rua Clímaco Pereira", Minutes: 2},
			{ID: 8, From: "Praça Orlando de Barros Pimentel", To: "Rua Domício da Gama", Minutes: 2},
			{ID: 9, From: "Praça Orlando de Barros Pimentel", To: "Praça Conselheiro Macedo Soares", Minutes: 2},
			{ID: 10, From: "Rua Álvares de Castro", To: "Rua Abreu Rangel", Minutes: 2},
			{ID: 11, From: "Rua Abreu Rangel", To: "Avenida Roberto Silveira", Minutes: 1},
			{ID: 12, From: "Avenida Roberto Silveira", To: "Rua Ribeiro de Almeida", Minutes: 2},
			{ID: 13, From: "Rua Clímaco Pereira", To: "Rua Nossa Senhora do Amparo", Minutes: 1},
			{ID: 14, From: "Rua Domício da Gama", To: "Rua Carlos Rangel", Minutes: 2},
			{ID: 15, From: "Rua Ribeiro de Almeida", To: "Praça Conselheiro Macedo Soares", Minutes: 2},
			{ID: 16, From: "Rua Carlos Rangel", To: "Praça Conselheiro Macedo Soares", Minutes: 2},
		},
	}
}

// MaricaDispatch is the smaller map served to the dispatch desk, with two
// hospitals an ambulance can leave from.
func MaricaDispatch() Scenario {
	return Scenario{
		Name: "marica-dispatch",
		Places: []Place{
			{ID: "Praça Orlando de Barros Pimentel", Kind: Square},
			{ID: "RJ-106 (Rodovia Amaral Peixoto)", Kind: Street},
			{ID: "Rua Abreu Rangel", Kind: Street},
			{ID: "Hospital Conde Modesto Leal", Kind: Hospital},
			{ID: "Av. Roberto Silveira", Kind: Street},
			{ID: "UPA de Inoã", Kind: Hospital},
		},
		Roads: []Road{
			{ID: 1, From: "Praça Orlando de Barros Pimentel", To: "RJ-106 (Rodovia Amaral Peixoto)", Minutes: 4},
			{ID: 2, From: "Praça Orlando de Barros Pimentel", To: "Rua Abreu Rangel", Minutes: 2},
			{ID: 3, From: "RJ-106 (Rodovia Amaral Peixoto)", To: "Rua Abreu Rangel", Minutes: 1},
			{ID: 4, From: "RJ-106 (Rodovia Amaral Peixoto)", To: "Hospital Conde Modesto Leal", Minutes: 5},
			{ID: 5, From: "Rua Abreu Rangel", To: "Hospital Conde Modesto Leal", Minutes: 8},
			{ID: 6, From: "Rua Abreu Rangel", To: "Av. Roberto Silveira", Minutes: 10},
			{ID: 7, From: "Hospital Conde Modesto Leal", To: "Av. Roberto Silveira", Minutes: 2},
			{ID: 8, From: "Av. Roberto Silveira", To: "UPA de Inoã", Minutes: 3},
		},
	}
}

// Builtin returns every scenario shipped with the binary.
func Builtin() []Scenario {
	return []Scenario{Example(), Marica(), MaricaDispatch()}
}
