package card

// seed is the built-in collection used when no valid stored document exists.
var seed = Collection{
	{
		Subject: "Math",
		Front:   "➗ Quadratic Formula",
		Back:    `Solution for a quadratic equation $ax^2+bx+c=0$.$$x=\frac{-b\pm\sqrt{b^2-4ac}}{2a}$$`,
	},
	{
		Subject: "Math",
		Front:   "➗ Taylor Series (Maclaurin)",
		Back:    `Power-series expansion of $e^x$ about 0.$$e^x=\sum_{n=0}^{\infty}\frac{x^n}{n!}$$`,
	},
	{
		Subject: "Math",
		Front:   "➗ Fundamental Theorem of Calculus",
		Back:    `Connects differentiation and integration.$$\frac{d}{dx}\int_a^x f(t)\,dt=f(x)$$`,
	},
	{
		Subject: "Math",
		Front:   "➗ Eigenvalues & Characteristic Polynomial",
		Back:    `Eigenvalues λ satisfy the determinant equation.$$\det(A-\lambda I)=0$$`,
	},
	{
		Subject: "Math",
		Front:   "➗ Divergence Theorem",
		Back:    `Relates flux to divergence.$$\int_V\nabla\cdot\mathbf{F}\,dV=\oint_{\partial V}\mathbf{F}\cdot d\mathbf{S}$$`,
	},
	{
		Subject: "Physics",
		Front:   "🔬 Newton's Second Law",
		Back:    `Force equals mass times acceleration.$$\mathbf{F}=m\mathbf{a}$$`,
	},
	{
		Subject: "Physics",
		Front:   "🔬 Conservation of Energy",
		Back:    `Total mechanical energy remains constant.$$E=K+U$$`,
	},
	{
		Subject: "Physics",
		Front:   "🔬 Schrödinger Equation",
		Back:    `Quantum wave equation.$$-\frac{\hbar^2}{2m}\nabla^2\psi+V\psi=E\psi$$`,
	},
	{
		Subject: "Physics",
		Front:   "🔬 Lorentz Force",
		Back:    `Force on a charged particle.$$\mathbf{F}=q(\mathbf{E}+\mathbf{v}\times\mathbf{B})$$`,
	},
	{
		Subject: "Physics",
		Front:   "🔬 Simple Harmonic Oscillator",
		Back:    `SHO differential equation.$$m\ddot{x}+kx=0$$`,
	},
	{
		Subject: "Chemistry",
		Front:   "⚛️ Ideal Gas Law",
		Back:    `Gas pressure-volume relation.$$PV=nRT$$`,
	},
	{
		Subject: "Chemistry",
		Front:   "⚛️ Gibbs Free Energy",
		Back:    `Energy available for work.$$\Delta G=\Delta H-T\Delta S$$`,
	},
	{
		Subject: "Chemistry",
		Front:   "⚛️ Arrhenius Equation",
		Back:    `Reaction rate temperature dependence.$$k=Ae^{-E_a/(RT)}$$`,
	},
	{
		Subject: "Chemistry",
		Front:   "⚛️ Beer–Lambert Law",
		Back:    `Absorbance relation.$$A=\varepsilon c\ell$$`,
	},
	{
		Subject: "Chemistry",
		Front:   "⚛️ Henderson–Hasselbalch Equation",
		Back:    `pH of buffer solution.$$\mathrm{pH}=pK_a+\log\frac{[A^-]}{[HA]}$$`,
	},
}

// Seed returns a fresh copy of the built-in seed collection: five cards each
// of Math, Physics and Chemistry.
func Seed() Collection {
	return seed.Clone()
}
