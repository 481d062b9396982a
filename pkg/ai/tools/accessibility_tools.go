package tools

var coordinatesParam = []Parameter{{Name: "coordinates", Type: "dict", Required: true}}

var accessibilityTools = MustToolSet("accessibility",
	Tool{
		Name: GeneralStatsEducation,
		Description: "Returns statistics on everything related to education: " +
			"[kindergartens, schools, specialized educational institutions, " +
			"secondary special educational institutions, higher educational institutions]; " +
			"data on the transport accessibility of all educational institutions.",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsHealthcare,
		Description: "Returns statistics on all possible healthcare facilities for PEOPLE, " +
			"everything related to human health: [clinics, polyclinics, hospitals, inpatient facilities, " +
			"trauma departments, maternity homes, dentistry, women's consultations, pharmacies, " +
			"emergency stations, psychological help centers]; data on the transport accessibility " +
			"of all medical services.",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsCulture,
		Description: "Returns statistics on the provision of cultural and leisure objects of all kinds: " +
			"[libraries, museums, botanical gardens, circuses, theaters, zoos, cinemas, movie theaters, " +
			"cafes, restaurants, parks, clubs, landmarks]; data on the transport accessibility of all " +
			"these objects by transport and on foot.",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsSports,
		Description: "Returns statistics on sports facilities, everything related to sports: " +
			"[swimming pools, gyms, fitness centers, ice rinks, figure skating rinks, football fields, " +
			"basketball courts]; data on the transport accessibility of all these facilities.",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsServices,
		Description: "Returns statistics on objects that improve the quality of life, social services, " +
			"objects providing various services, objects for pets: [grocery stores, clothing stores, " +
			"electronics stores, bookstores, children's stores, banks, government service centers, " +
			"hairdressers, beauty salons, veterinary clinics, dog walking areas]; data on the transport " +
			"accessibility of all these objects.",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsDemography,
		Description: "Returns statistics on demographic indicators: [population of the territory, " +
			"population under working age (children), working age, over working age, pensioners; " +
			"population growth over the last year; the number of preschool children, school-age children; " +
			"expected number of pregnant women and population with children under one year; expected " +
			"number of people with disabilities affecting motor skills, etc.]",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsHousing,
		Description: "Returns statistics on such housing and communal services indicators as: total area " +
			"of residential premises and per capita; the share of dilapidated and emergency housing; the " +
			"share of residential buildings with central cold/hot water supply; the share of houses equipped " +
			"with central sewage; the average age of residential buildings in the area; the number of " +
			"emergency residential buildings, etc.",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsCity,
		Description: "Get statistics for healthcare, population, housing facilities, recreation, playgrounds, " +
			"education, public transport accessibility, churches and temples, sports infrastructure, " +
			"cultural and leisure facilities in the given city.",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsDistrictsMO,
		Description: "Get statistics for healthcare, education, public transport accessibility, churches and " +
			"temples, sports infrastructure, cultural and leisure facilities in the given district or municipality.",
		Parameters: coordinatesParam,
	},
	Tool{
		Name: GeneralStatsBlock,
		Description: "Get statistics for healthcare, population, housing facilities, recreation, playgrounds, " +
			"education, public transport accessibility, churches and temples, sports infrastructure, " +
			"cultural and leisure facilities in the given block.",
		Parameters: coordinatesParam,
	},
)

// AccessibilityTools is the data-function set offered inside the accessibility pipeline
func AccessibilityTools() ToolSet {
	return accessibilityTools
}
