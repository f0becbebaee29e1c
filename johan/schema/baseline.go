package schema

// baselineSchema is the host's own slice of the shared data model. Package
// fragments merge on top of it, so re-typing any of these fields (the
// classic mistake being User.password as something other than String) fails
// at registration time.
const baselineSchema = `
model User {
  id        Int      @id @default(autoincrement())
  email     String   @unique
  name      String
  password  String
  createdAt DateTime @default(now())
  updatedAt DateTime @updatedAt
}

model Agent {
  id        String   @id @default(uuid())
  name      String
  model     String
  tools     String[]
  createdAt DateTime @default(now())
  updatedAt DateTime @updatedAt
}

model Chat {
  id        String   @id @default(uuid())
  userId    Int
  agentId   String?
  title     String?
  createdAt DateTime @default(now())
  updatedAt DateTime @updatedAt
}

model ChatMessage {
  id        String   @id @default(uuid())
  chatId    String
  role      String
  content   String
  createdAt DateTime @default(now())
}
`

// Baseline returns a fresh merged schema seeded with the host models.
func Baseline() *Merged {
	frag, err := Parse("johan", baselineSchema)
	if err != nil {
		panic("baseline schema does not parse: " + err.Error())
	}
	m := NewMerged()
	if err := m.Apply(frag); err != nil {
		panic("baseline schema does not merge: " + err.Error())
	}
	return m
}
