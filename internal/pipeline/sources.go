package pipeline

import "catalogo/internal"

// DefaultSources is the price list export, in the order ids are assigned.
var DefaultSources = []internal.SourceFile{
	{Name: "1_Comestibles - 1(0)_Resto.csv", Category: internal.CategoryComestibles},
	{Name: "1_Comestibles - 1(1)_Golosinas.csv", Category: internal.CategoryComestibles},
	{Name: "1_Comestibles - 1(2)_Frescos.csv", Category: internal.CategoryComestibles},
	{Name: "2_Bebidas - 2(0)_Bebidas.csv", Category: internal.CategoryBebidas},
	{Name: "3_Higiene - 3(0)_Higiene.csv", Category: internal.CategoryHigiene},
	{Name: "4_Limpieza - 4(0)_Limpieza.csv", Category: internal.CategoryLimpieza},
	{Name: "5_Medicamentos - 5(0)_Medicamentos.csv", Category: internal.CategoryMedicamentos},
	{Name: "6_Otros - 6(0)_Otros.csv", Category: internal.CategoryOtros},
}
