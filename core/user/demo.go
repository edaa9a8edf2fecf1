package user

// DemoPassword is the password shared by all reference accounts.
const DemoPassword = "demo123"

// DemoUsers returns the static reference list: two students (one with a
// complete profile, one brand new), a teacher and a parent. Passwords are
// hashed at seed time, see SeedDemo.
func DemoUsers() []User {
	return []User{
		{
			ID:          "1",
			Email:       "estudiante@demo.com",
			Role:        RoleStudent,
			Name:        "María González",
			IsNewUser:   false,
			ParentEmail: "padre@demo.com",
			Profile: &StudentProfile{
				Avatar: "https://api.dicebear.com/7.x/avataaars/svg?seed=Maria",
				PersonalInfo: PersonalInfo{
					FullName:  "María González Pérez",
					Age:       15,
					Course:    "4º ESO",
					Email:     "maria.gonzalez@ejemplo.com",
					Interests: []string{"Historia", "Arte", "Música"},
				},
				TutorPreferences: TutorPreferences{
					CharacterDescription: "Una exploradora aventurera como Lara Croft",
					Personality:          []string{"Motivador", "Paciente", "Divertido"},
					PreferredStyle:       "Visual y dinámico",
				},
				CompletedSetup: true,
			},
		},
		{
			ID:          "2",
			Email:       "nuevo@demo.com",
			Role:        RoleStudent,
			Name:        "Carlos Ruiz",
			IsNewUser:   true,
			ParentEmail: "padre@demo.com",
		},
		{
			ID:    "3",
			Email: "profesor@demo.com",
			Role:  RoleTeacher,
			Name:  "Prof. Ana Martínez",
		},
		{
			ID:    "4",
			Email: "padre@demo.com",
			Role:  RoleParent,
			Name:  "Juan Pérez",
		},
	}
}

// SeedDemo loads the reference users into an empty repository. Existing
// records are left untouched.
func SeedDemo(repo Repository) error {
	for _, usr := range DemoUsers() {
		if _, err := repo.GetUserByEmail(usr.Email); err == nil {
			continue
		}
		if err := usr.SetPassword(DemoPassword); err != nil {
			return err
		}
		if _, err := repo.CreateUser(usr); err != nil {
			return err
		}
	}
	return nil
}
