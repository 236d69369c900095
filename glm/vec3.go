package glm

type Vec3[T Numeric] [3]T
