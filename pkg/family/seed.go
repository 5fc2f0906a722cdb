package family

// Seed returns the built-in dataset used when nothing has been saved yet or
// the saved blob cannot be read.
func Seed() TreeData {
	return TreeData{Members: []Member{
		{ID: "seed-arthur", FirstName: "Arthur", LastName: "Hale", Gender: Male, BirthDate: "1921-03-14", DeathDate: "1994-11-02", SpouseID: "seed-edith"},
		{ID: "seed-edith", FirstName: "Edith", LastName: "Hale", Gender: Female, BirthDate: "1924-07-30", DeathDate: "2008-01-19", SpouseID: "seed-arthur"},
		{ID: "seed-robert", FirstName: "Robert", LastName: "Hale", Gender: Male, BirthDate: "1950-05-09", FatherID: "seed-arthur", MotherID: "seed-edith", SpouseID: "seed-maria"},
		{ID: "seed-maria", FirstName: "Maria", LastName: "Hale", Gender: Female, BirthDate: "1953-09-21", SpouseID: "seed-robert"},
		{ID: "seed-helen", FirstName: "Helen", LastName: "Hale", Gender: Female, BirthDate: "1955-12-02", FatherID: "seed-arthur", MotherID: "seed-edith"},
		{ID: "seed-daniel", FirstName: "Daniel", LastName: "Hale", Gender: Male, BirthDate: "1980-02-17", FatherID: "seed-robert", MotherID: "seed-maria"},
		{ID: "seed-sofia", FirstName: "Sofia", LastName: "Hale", Gender: Female, BirthDate: "1983-06-05", FatherID: "seed-robert", MotherID: "seed-maria"},
	}}
}
