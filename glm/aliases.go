package glm

type Mat3f = Mat3[float32]

type Vec2f = Vec2[float32]
type Vec3f = Vec3[float32]
